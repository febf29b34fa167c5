package database

import (
	"log"
	"space_manager/constants"
	"space_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{Email: "admin@spacemanager.local", Password: hashPassword, Role: constants.ROLE_ADMIN, IsActive: true},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}

	spaces := []model.Space{
		{
			Name:        "Quiet Corner",
			Description: "A quiet corner perfect for focused work.",
			Location:    "Building A, 2nd floor",
			Capacity:    4,
			SpaceType:   model.StudyRoom,
			OpeningTime: "08:00",
			ClosingTime: "20:00",
			Price:       120,
			IsAvailable: true,
		},
		{
			Name:        "Boardroom One",
			Description: "Conference room with projector and whiteboard.",
			Location:    "Building B, ground floor",
			Capacity:    12,
			SpaceType:   model.ConferenceRoom,
			OpeningTime: "07:00",
			ClosingTime: "22:00",
			Price:       450,
			IsAvailable: true,
		},
		{
			Name:        "Open Desk Row",
			Description: "Shared desks in the common area.",
			Location:    "Building A, ground floor",
			Capacity:    20,
			SpaceType:   model.OpenDesk,
			OpeningTime: "06:00",
			ClosingTime: "23:00",
			Price:       60,
			IsAvailable: true,
		},
	}
	for _, space := range spaces {
		space.Slug = slug.Make(space.Name)
		if err := db.Where(model.Space{Name: space.Name}).FirstOrCreate(&space).Error; err != nil {
			log.Println("failed to seed space:", space.Name, "error:", err)
		}
	}
}
