package main // seed populates a fresh database with demo data

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Shrutis65143/Booqly/internal/config"
	"github.com/Shrutis65143/Booqly/internal/database"
	"github.com/Shrutis65143/Booqly/internal/model"
	"github.com/Shrutis65143/Booqly/internal/repository"
)

var categoryNames = []string{
	"Fiction", "Science Fiction", "Romance", "Mystery", "Biography",
	"History", "Self-Help", "Philosophy", "Business", "Technology",
	"Science", "Poetry", "Drama", "Travel", "Cooking",
}

type seedUser struct {
	name, email, password, role, phone string
}

var seedUsers = []seedUser{
	{"Library Admin", "admin@booqly.local", "admin123", model.RoleAdmin, "+10000000001"},
	{"Shruti Singh", "shruti.singh@email.com", "password123", model.RoleUser, "+919876543210"},
	{"Sandip Kushwaha", "sandip.kushwaha@email.com", "password123", model.RoleUser, "+919876543211"},
	{"Priya Sharma", "priya.sharma@email.com", "password123", model.RoleUser, "+919876543212"},
}

type seedBook struct {
	title, author, isbn, category, description, publisher, location, cover string
	year                                                                   uint16
	total, available                                                       int
}

var seedBooks = []seedBook{
	{"The Great Gatsby", "F. Scott Fitzgerald", "9780743273565", "Fiction",
		"A story of the fabulously wealthy Jay Gatsby and his love for the beautiful Daisy Buchanan.",
		"Scribner", "Fiction Section A1",
		"https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop&crop=center", 1925, 5, 3},
	{"To Kill a Mockingbird", "Harper Lee", "9780446310789", "Fiction",
		"The story of young Scout Finch and her father Atticus in a racially divided Alabama town.",
		"Grand Central Publishing", "Fiction Section A2",
		"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=600&fit=crop&crop=center", 1960, 4, 2},
	{"1984", "George Orwell", "9780451524935", "Science Fiction",
		"A dystopian novel about totalitarianism, surveillance and the manipulation of truth.",
		"Signet Classic", "SciFi Section B1",
		"https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop&crop=center", 1949, 6, 6},
	{"Pride and Prejudice", "Jane Austen", "9780141439518", "Romance",
		"The turbulent relationship between Elizabeth Bennet and Fitzwilliam Darcy.",
		"Penguin Classics", "Romance Section C1",
		"https://images.unsplash.com/photo-1541963463532-d68292c34b19?w=400&h=600&fit=crop&crop=center", 1813, 3, 3},
	{"The Da Vinci Code", "Dan Brown", "9780307474278", "Mystery",
		"Symbologist Robert Langdon unravels a murder inside the Louvre.",
		"Anchor", "Mystery Section D1",
		"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop&crop=center", 2003, 4, 4},
	{"Steve Jobs", "Walter Isaacson", "9781451648539", "Biography",
		"The exclusive biography of Apple's co-founder, based on over forty interviews.",
		"Simon & Schuster", "Biography Section E1",
		"https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=400&h=600&fit=crop&crop=center", 2011, 2, 2},
	{"Sapiens: A Brief History of Humankind", "Yuval Noah Harari", "9780062316097", "History",
		"How an insignificant ape became the ruler of planet Earth.",
		"Harper", "History Section F1",
		"https://images.unsplash.com/photo-1589829085413-56de8ae18c73?w=400&h=600&fit=crop&crop=center", 2011, 5, 5},
	{"The Power of Habit", "Charles Duhigg", "9780812981605", "Self-Help",
		"Why habits exist and how they can be changed.",
		"Random House", "Self-Help Section G1",
		"https://images.unsplash.com/photo-1592496431122-2349e0fbc666?w=400&h=600&fit=crop&crop=center", 2012, 3, 3},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	categories := repository.NewCategoryRepo(db)
	users := repository.NewUserRepo(db)
	books := repository.NewBookRepo(db)

	for _, name := range categoryNames {
		if _, err := categories.EnsureByName(ctx, name); err != nil {
			log.Fatalf("seed category %q: %v", name, err)
		}
	}
	log.Printf("seeded %d categories", len(categoryNames))

	for _, u := range seedUsers {
		_, membership, err := users.Create(ctx, u.name, u.email, u.password, u.role, u.phone, cfg.BcryptCost)
		if err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				log.Printf("user %s already exists, skipping", u.email)
				continue
			}
			log.Fatalf("seed user %s: %v", u.email, err)
		}
		log.Printf("seeded user %s (%s, %s)", u.email, u.role, membership)
	}

	for _, sb := range seedBooks {
		catID, err := categories.EnsureByName(ctx, sb.category)
		if err != nil {
			log.Fatalf("resolve category %q: %v", sb.category, err)
		}
		year := sb.year
		b := model.Book{
			Title:           sb.title,
			Author:          sb.author,
			ISBN:            sb.isbn,
			CategoryID:      catID,
			Description:     sb.description,
			PublicationYear: &year,
			Publisher:       sb.publisher,
			TotalCopies:     uint32(sb.total),
			AvailableCopies: uint32(sb.available),
			Location:        sb.location,
			CoverImage:      sb.cover,
		}
		if err := books.Create(ctx, &b); err != nil {
			if errors.Is(err, repository.ErrISBNExists) {
				log.Printf("book %s already exists, skipping", sb.isbn)
				continue
			}
			log.Fatalf("seed book %s: %v", sb.isbn, err)
		}
	}
	log.Printf("seeded %d books", len(seedBooks))
}
