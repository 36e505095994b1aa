package models

type Profile struct {
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	Occupation      string             `json:"occupation"`
	Bio             string             `json:"bio"`
	ProfilePhotoURL string             `json:"profile_photo_url"`
	Preferences     ProfilePreferences `json:"preferences"`
}

type ProfilePreferences struct {
	BudgetMin         float64 `json:"budget_min"`
	BudgetMax         float64 `json:"budget_max"`
	PreferredLocation string  `json:"preferred_location"`
	GenderPreference  string  `json:"gender_preference"`
	Lifestyle         string  `json:"lifestyle"`
	PetFriendly       bool    `json:"pet_friendly"`
}
