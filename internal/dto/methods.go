package dto

// MethodRequest is the payload for creating or replacing a communication method.
type MethodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Sequence    int    `json:"sequence"`
	Mandatory   bool   `json:"mandatory"`
}
