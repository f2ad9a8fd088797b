package model

// NGO is a flat directory record from the NGO registry. Read-only.
type NGO struct {
	ID       string   `json:"id"`
	NGOName  string   `json:"ngo_name"`
	DarpanID string   `json:"darpan_id"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	Sectors  []string `json:"sectors"`
	Phone    string   `json:"phone"`
}

// Resource is a flat directory record of an NGO-held resource. Read-only.
type Resource struct {
	ID                string `json:"id"`
	ResourceName      string `json:"resource_name"`
	NGOName           string `json:"ngo_name"`
	ResourceType      string `json:"resource_type"`
	QuantityAvailable int    `json:"quantity_available"`
	Unit              string `json:"unit"`
	LocationCity      string `json:"location_city"`
	LocationState     string `json:"location_state"`
	ContactPhone      string `json:"contact_phone"`
}
