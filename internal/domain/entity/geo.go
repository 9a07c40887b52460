package entity

// Division is a top-level administrative area.
type Division struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// District belongs to a division.
type District struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	DivisionID uint   `json:"divisionId"`
}

// Upazila belongs to a district.
type Upazila struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	DistrictID uint   `json:"districtId"`
}
