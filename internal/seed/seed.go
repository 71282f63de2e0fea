// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"threaded/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumThreads  int
	ShouldClean bool
}

// Run populates the database with fake users, connections, threads,
// contributions and image posts.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumThreads <= 0 {
		opts.NumThreads = 60
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	// One shared password keeps demo logins predictable.
	hash, err := bcrypt.GenerateFromPassword([]byte("seeded-pw1"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		username := gofakeit.Username()
		user := &models.User{
			FirstName:    gofakeit.FirstName(),
			LastName:     gofakeit.LastName(),
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Age:          gofakeit.Number(13, 90),
			PasswordHash: string(hash),
			Username:     &username,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	statuses := []models.RelationStatus{
		models.RelationStatusPending,
		models.RelationStatusAccepted,
		models.RelationStatusRejected,
	}
	relations := 0
	for _, u := range users {
		for n := 0; n < r.Intn(4); n++ {
			target := users[r.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			rel := &models.Relation{
				RequesterID: u.ID,
				AddresseeID: target.ID,
				Status:      statuses[r.Intn(len(statuses))],
			}
			// Duplicate pairs trip the unique index; skip them silently.
			if err := db.Create(rel).Error; err == nil {
				relations++
			}
		}
	}
	log.Printf("Seeded %d relations", relations)

	contributions := 0
	for i := 0; i < opts.NumThreads; i++ {
		owner := users[r.Intn(len(users))]
		thread := &models.Thread{
			UserID:     owner.ID,
			Title:      gofakeit.Sentence(4),
			Text:       gofakeit.Paragraph(1, 2, 8, " "),
			Visibility: models.ThreadVisibilityPublic,
			Lifecycle:  models.ThreadLifecycleLive,
		}
		if r.Intn(4) == 0 {
			thread.Visibility = models.ThreadVisibilityPrivate
		}
		if r.Intn(5) == 0 {
			thread.Lifecycle = models.ThreadLifecycleClosed
		}
		if err := db.Create(thread).Error; err != nil {
			return fmt.Errorf("seed thread %d: %w", i, err)
		}

		if thread.Lifecycle == models.ThreadLifecycleLive {
			count := r.Intn(5)
			for n := 0; n < count; n++ {
				contributor := users[r.Intn(len(users))]
				contribution := &models.Contribution{
					UserID:   contributor.ID,
					ThreadID: thread.ID,
					Text:     gofakeit.Sentence(6),
				}
				if err := db.Create(contribution).Error; err != nil {
					return fmt.Errorf("seed contribution: %w", err)
				}
				contributions++
			}
			if count > 0 {
				if err := db.Model(thread).Update("contributor_count", count).Error; err != nil {
					return err
				}
			}
		}
	}
	log.Printf("Seeded %d threads with %d contributions", opts.NumThreads, contributions)

	images := 0
	for _, u := range users {
		for n := 0; n < r.Intn(3); n++ {
			likes := r.Intn(200)
			image := &models.Image{
				UserID:  u.ID,
				URL:     fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
				Caption: gofakeit.Sentence(5),
				Likes:   &likes,
			}
			if err := db.Create(image).Error; err != nil {
				return fmt.Errorf("seed image: %w", err)
			}
			images++
		}
	}
	log.Printf("Seeded %d images", images)

	return nil
}

func clean(db *gorm.DB) error {
	// Child tables first so foreign keys stay satisfied.
	for _, table := range []string{"contributer_threads", "owned_threads", "images", "relations", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}
