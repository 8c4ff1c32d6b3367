package model

import "time"

// BuildingDocument is the metadata record for one file attached to a building.
// All fields are set once at upload time and never mutated; a document is
// removed as a whole, never edited in place.
type BuildingDocument struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	StoragePath string    `json:"storage_path"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UploadedBy  string    `json:"uploaded_by"`
}

// Building is the parent record that owns an ordered list of documents.
// The Documents slice is the source of truth for which attachments exist;
// slice order is upload order.
//
// Address, RoofType and ContactName are optional. Absent values render as
// "N/A" through the Display helpers; handlers and templates must not invent
// their own fallback.
type Building struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Address     *string            `json:"address,omitempty"`
	RoofType    *string            `json:"roof_type,omitempty"`
	ContactName *string            `json:"contact_name,omitempty"`
	Documents   []BuildingDocument `json:"documents"`
	CreatedAt   time.Time          `json:"created_at"`
}

const displayUnset = "N/A"

// DisplayAddress returns the address or "N/A" when unset.
func (b *Building) DisplayAddress() string { return displayOrDefault(b.Address) }

// DisplayRoofType returns the roof type or "N/A" when unset.
func (b *Building) DisplayRoofType() string { return displayOrDefault(b.RoofType) }

// DisplayContactName returns the contact name or "N/A" when unset.
func (b *Building) DisplayContactName() string { return displayOrDefault(b.ContactName) }

// DocumentByID returns the attached document with the given id, or false when
// no such entry exists on the building.
func (b *Building) DocumentByID(id string) (BuildingDocument, bool) {
	for _, d := range b.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return BuildingDocument{}, false
}

func displayOrDefault(s *string) string {
	if s == nil || *s == "" {
		return displayUnset
	}
	return *s
}
