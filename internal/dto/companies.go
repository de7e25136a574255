package dto

// CompanyRequest is the payload for creating or replacing a company.
type CompanyRequest struct {
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	LinkedInProfile string   `json:"linkedin_profile"`
	Emails          []string `json:"emails"`
	PhoneNumbers    []string `json:"phone_numbers"`
	Comments        string   `json:"comments"`
	Periodicity     string   `json:"periodicity"`
}
