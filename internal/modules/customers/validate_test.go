package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() FormInput {
	return FormInput{
		Name:        "Jamie",
		Email:       "jamie@example.com",
		RenewalDate: "2024-01-01",
		Income:      "500",
		Expense:     "400",
		Profit:      "100",
	}
}

func TestValidateForm_Valid(t *testing.T) {
	assert.Empty(t, ValidateForm(validForm()))
}

func TestValidateForm_MissingName(t *testing.T) {
	form := FormInput{
		Name:        "",
		Email:       "a@b.com",
		RenewalDate: "2024-01-01",
		Income:      "1",
		Expense:     "1",
		Profit:      "0",
	}
	assert.Equal(t, []string{"Name is required."}, ValidateForm(form))
}

func TestValidateForm_EmailShape(t *testing.T) {
	form := validForm()
	form.Email = "not-an-email"
	assert.Equal(t, []string{"Email is invalid."}, ValidateForm(form))

	form.Email = "   "
	assert.Equal(t, []string{"Email is required."}, ValidateForm(form))

	form.Email = "user@host.tld"
	assert.Empty(t, ValidateForm(form))
}

func TestValidateForm_NumericFields(t *testing.T) {
	form := validForm()
	form.Income = "abc"
	form.Expense = ""
	assert.Equal(t, []string{
		"Income is required and must be a number.",
		"Expense is required and must be a number.",
	}, ValidateForm(form))
}

func TestValidateForm_AllMissing(t *testing.T) {
	errs := ValidateForm(FormInput{})
	assert.Equal(t, []string{
		"Name is required.",
		"Email is required.",
		"Renewal Date is required.",
		"Income is required and must be a number.",
		"Expense is required and must be a number.",
		"Profit is required and must be a number.",
	}, errs)
}

func TestValidateForm_NegativeNumbersAllowed(t *testing.T) {
	form := validForm()
	form.Profit = "-250.50"
	assert.Empty(t, ValidateForm(form))
}
