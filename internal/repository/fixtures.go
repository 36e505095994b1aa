package repository

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/pkg/utils"
)

//go:embed fixtures/seed.yaml
var embeddedSeed []byte

// Fixtures is the static session seed.
type Fixtures struct {
	Listings      []models.Listing      `json:"listings"`
	Conversations []models.Conversation `json:"conversations"`
	Profile       models.Profile        `json:"profile"`
}

type fixtureFile struct {
	Listings      []fixtureListing      `yaml:"listings"`
	Conversations []fixtureConversation `yaml:"conversations"`
	Profile       fixtureProfile        `yaml:"profile"`
}

type fixtureListing struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Description   string        `yaml:"description"`
	Location      string        `yaml:"location"`
	RentAmount    float64       `yaml:"rent_amount"`
	AvailableFrom string        `yaml:"available_from"`
	CreatedAt     string        `yaml:"created_at"`
	Images        []string      `yaml:"images"`
	Amenities     []string      `yaml:"amenities"`
	Owner         *models.Owner `yaml:"owner"`
}

type fixtureConversation struct {
	ID              string           `yaml:"id"`
	UserID          string           `yaml:"user_id"`
	Name            string           `yaml:"name"`
	Avatar          string           `yaml:"avatar"`
	LastMessage     string           `yaml:"last_message"`
	LastMessageTime string           `yaml:"last_message_time"`
	Unread          bool             `yaml:"unread"`
	Messages        []fixtureMessage `yaml:"messages"`
}

type fixtureMessage struct {
	ID        string `yaml:"id"`
	SenderID  string `yaml:"sender_id"`
	Content   string `yaml:"content"`
	Timestamp string `yaml:"timestamp"`
}

type fixtureProfile struct {
	FirstName       string `yaml:"first_name"`
	LastName        string `yaml:"last_name"`
	Email           string `yaml:"email"`
	Phone           string `yaml:"phone"`
	Occupation      string `yaml:"occupation"`
	Bio             string `yaml:"bio"`
	ProfilePhotoURL string `yaml:"profile_photo_url"`
	Preferences     struct {
		BudgetMin         float64 `yaml:"budget_min"`
		BudgetMax         float64 `yaml:"budget_max"`
		PreferredLocation string  `yaml:"preferred_location"`
		GenderPreference  string  `yaml:"gender_preference"`
		Lifestyle         string  `yaml:"lifestyle"`
		PetFriendly       bool    `yaml:"pet_friendly"`
	} `yaml:"preferences"`
}

// LoadFixtures reads the seed at path, or the embedded seed when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	if path == "" {
		return DecodeFixtures(bytes.NewReader(embeddedSeed))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()

	return DecodeFixtures(f)
}

// DecodeFixtures parses a YAML seed. Unknown keys are rejected.
func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file fixtureFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode fixtures: empty document")
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	fixtures := &Fixtures{
		Listings:      make([]models.Listing, 0, len(file.Listings)),
		Conversations: make([]models.Conversation, 0, len(file.Conversations)),
	}

	for _, raw := range file.Listings {
		listing, err := raw.toModel()
		if err != nil {
			return nil, err
		}
		fixtures.Listings = append(fixtures.Listings, listing)
	}
	for _, raw := range file.Conversations {
		conversation, err := raw.toModel()
		if err != nil {
			return nil, err
		}
		fixtures.Conversations = append(fixtures.Conversations, conversation)
	}

	p := file.Profile
	fixtures.Profile = models.Profile{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
		Occupation:      p.Occupation,
		Bio:             p.Bio,
		ProfilePhotoURL: p.ProfilePhotoURL,
		Preferences: models.ProfilePreferences{
			BudgetMin:         p.Preferences.BudgetMin,
			BudgetMax:         p.Preferences.BudgetMax,
			PreferredLocation: p.Preferences.PreferredLocation,
			GenderPreference:  p.Preferences.GenderPreference,
			Lifestyle:         p.Preferences.Lifestyle,
			PetFriendly:       p.Preferences.PetFriendly,
		},
	}

	return fixtures, nil
}

func (f fixtureListing) toModel() (models.Listing, error) {
	availableFrom, err := models.ParseDate(f.AvailableFrom)
	if err != nil {
		return models.Listing{}, fmt.Errorf("listing %q: available_from %q: %w", f.ID, f.AvailableFrom, err)
	}
	createdAt, err := models.ParseDate(f.CreatedAt)
	if err != nil {
		return models.Listing{}, fmt.Errorf("listing %q: created_at %q: %w", f.ID, f.CreatedAt, err)
	}

	images := f.Images
	if images == nil {
		images = []string{}
	}
	amenities := f.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return models.Listing{
		ID:            f.ID,
		Title:         f.Title,
		Description:   f.Description,
		Location:      f.Location,
		RentAmount:    f.RentAmount,
		AvailableFrom: availableFrom,
		CreatedAt:     createdAt,
		Images:        images,
		Amenities:     amenities,
		Owner:         f.Owner,
	}, nil
}

func (f fixtureConversation) toModel() (models.Conversation, error) {
	lastMessageTime, err := utils.ParseDate(f.LastMessageTime)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("conversation %q: last_message_time %q: %w", f.ID, f.LastMessageTime, err)
	}

	messages := make([]models.Message, 0, len(f.Messages))
	for _, m := range f.Messages {
		ts, err := utils.ParseDate(m.Timestamp)
		if err != nil {
			return models.Conversation{}, fmt.Errorf("conversation %q: message %q timestamp %q: %w", f.ID, m.ID, m.Timestamp, err)
		}
		if len(messages) > 0 && ts.Before(messages[len(messages)-1].Timestamp) {
			return models.Conversation{}, fmt.Errorf("conversation %q: message %q is out of chronological order", f.ID, m.ID)
		}
		messages = append(messages, models.Message{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			Timestamp: ts,
		})
	}

	return models.Conversation{
		ID:              f.ID,
		UserID:          f.UserID,
		Name:            f.Name,
		Avatar:          f.Avatar,
		LastMessage:     f.LastMessage,
		LastMessageTime: lastMessageTime,
		Unread:          f.Unread,
		Messages:        messages,
	}, nil
}
