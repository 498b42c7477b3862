package models

import "zappayBack/internal/fields"

// Utility is immutable reference data describing one biller: where the
// money goes and which form fields the payer must fill in.
type Utility struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	BankAccount string         `json:"bank_account"`
	Fields      []fields.Field `json:"fields_description"`
}
