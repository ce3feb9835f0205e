package domain

// Orientation identifies a side of a card
type Orientation int

const (
	Front Orientation = iota
	Back
)

func (o Orientation) String() string {
	if o == Back {
		return "back"
	}
	return "front"
}

// Opposite returns the other side
func (o Orientation) Opposite() Orientation {
	if o == Front {
		return Back
	}
	return Front
}

// Label returns the display label shown to the user
func (o Orientation) Label() string {
	if o == Front {
		return "Frente"
	}
	return "Reverso"
}

// ParseOrientation accepts "front"/"back" and the display labels
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "front", "Front", "frente", "Frente", "f":
		return Front, true
	case "back", "Back", "reverso", "Reverso", "b":
		return Back, true
	}
	return Front, false
}

// Card is a single flashcard. ID is assigned at deck initialisation and never changes.
type Card struct {
	ID    int    `json:"id" validate:"gte=0"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Side returns the text of the given side
func (c Card) Side(o Orientation) string {
	if o == Back {
		return c.Back
	}
	return c.Front
}

// WithSide returns a copy of the card with one side replaced
func (c Card) WithSide(o Orientation, text string) Card {
	if o == Back {
		c.Back = text
	} else {
		c.Front = text
	}
	return c
}

// IsEmpty reports whether both sides are empty
func (c Card) IsEmpty() bool {
	return c.Front == "" && c.Back == ""
}
