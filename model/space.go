package model

type SpaceType string

const (
	ConferenceRoom SpaceType = "CONFERENCE_ROOM"
	StudyRoom      SpaceType = "STUDY_ROOM"
	MeetingRoom    SpaceType = "MEETING_ROOM"
	OpenDesk       SpaceType = "OPEN_DESK"
	EventHall      SpaceType = "EVENT_HALL"
)

type Space struct {
	DTO
	Name        string    `gorm:"not null" validate:"required" json:"name"`
	Slug        string    `gorm:"size:120;uniqueIndex" json:"slug"`
	Description string    `gorm:"size:1000" json:"description"`
	Location    string    `gorm:"not null" json:"location"`
	Capacity    int       `gorm:"not null" validate:"required,gt=0" json:"capacity"`
	SpaceType   SpaceType `gorm:"size:30;not null" json:"spaceType"`

	// Wall-clock operating hours, stored as "HH:mm".
	OpeningTime string `gorm:"size:5" json:"openingTime"`
	ClosingTime string `gorm:"size:5" json:"closingTime"`

	Price       float64 `json:"price"`
	IsAvailable bool    `gorm:"default:true" json:"isAvailable"`

	// Cloudinary public ID, opaque to the booking core.
	ImageFilename *string `json:"imageFilename"`
}

type Spaces []Space

// Space create/update bodies arrive as JSON or, when an image rides
// along, multipart form fields.
type CreateSpaceInput struct {
	Name        string  `json:"name" form:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" form:"description" validate:"max=1000"`
	Location    string  `json:"location" form:"location" validate:"required"`
	Capacity    int     `json:"capacity" form:"capacity" validate:"required,gt=0"`
	SpaceType   string  `json:"spaceType" form:"spaceType" validate:"required,oneof=CONFERENCE_ROOM STUDY_ROOM MEETING_ROOM OPEN_DESK EVENT_HALL"`
	OpeningTime string  `json:"openingTime" form:"openingTime" validate:"required,datetime=15:04"`
	ClosingTime string  `json:"closingTime" form:"closingTime" validate:"required,datetime=15:04"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
	IsAvailable *bool   `json:"isAvailable" form:"isAvailable"`
}

type UpdateSpaceInput struct {
	Name        *string  `json:"name" form:"name" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description" form:"description" validate:"omitempty,max=1000"`
	Location    *string  `json:"location" form:"location"`
	Capacity    *int     `json:"capacity" form:"capacity" validate:"omitempty,gt=0"`
	SpaceType   *string  `json:"spaceType" form:"spaceType" validate:"omitempty,oneof=CONFERENCE_ROOM STUDY_ROOM MEETING_ROOM OPEN_DESK EVENT_HALL"`
	OpeningTime *string  `json:"openingTime" form:"openingTime" validate:"omitempty,datetime=15:04"`
	ClosingTime *string  `json:"closingTime" form:"closingTime" validate:"omitempty,datetime=15:04"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	IsAvailable *bool    `json:"isAvailable" form:"isAvailable"`
}

type FilterSpace struct {
	Pagination
	SearchKey string  `query:"searchKey"`
	SpaceType *string `query:"spaceType"`
	Available *bool   `query:"available"`
}
