package handler

type createEmployeeRequest struct {
	Name       string  `json:"name" validate:"required"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	// Ownership fields are accepted in the payload but always overwritten
	// by the server; they exist here only so binding does not fail.
	CreatedBy string `json:"createdBy"`
}

type updateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Position   *string  `json:"position"`
	Department *string  `json:"department"`
	Salary     *float64 `json:"salary"`
	CreatedBy  *string  `json:"createdBy"`
}

type insertedResponse struct {
	InsertedID string `json:"insertedId"`
}

type modifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type deletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
