package models

type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Location      string   `json:"location"`
	RentAmount    float64  `json:"rent_amount"`
	AvailableFrom Date     `json:"available_from"`
	Images        []string `json:"images"`
	Amenities     []string `json:"amenities"`
	CreatedAt     Date     `json:"created_at"`
	Owner         *Owner   `json:"owner,omitempty"`
}

type Owner struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Occupation string `json:"occupation,omitempty" yaml:"occupation"`
	JoinedDate string `json:"joined_date,omitempty" yaml:"joined_date"`
}

// Clone returns a copy that shares no slices with l.
func (l Listing) Clone() Listing {
	out := l
	out.Images = append([]string(nil), l.Images...)
	out.Amenities = append([]string(nil), l.Amenities...)
	if l.Owner != nil {
		owner := *l.Owner
		out.Owner = &owner
	}
	return out
}

type ListingDraft struct {
	Title            string   `json:"title" validate:"required,max=120"`
	Description      string   `json:"description" validate:"required,max=4000"`
	City             string   `json:"city" validate:"required"`
	Neighborhood     string   `json:"neighborhood" validate:"required"`
	RentAmount       float64  `json:"rent_amount" validate:"gte=0"`
	AvailableFrom    string   `json:"available_from" validate:"required"`
	GenderPreference string   `json:"gender_preference" validate:"omitempty,oneof=any male female non-binary"`
	PetFriendly      bool     `json:"pet_friendly"`
	Amenities        []string `json:"amenities" validate:"dive,oneof=wifi privateBathroom furnished parking laundry airConditioning"`
	Images           []string `json:"images"`
}

type ListingSubmission struct {
	ID          string       `json:"id"`
	Location    string       `json:"location"`
	Draft       ListingDraft `json:"draft"`
	SubmittedAt string       `json:"submitted_at"`
}

type ListingWithScore struct {
	Listing
	MatchScore int `json:"match_score"`
}
