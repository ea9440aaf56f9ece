package database

import (
	"context"
	"fmt"
	"log"

	"github.com/junaidrashid-git/bookmarket-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type sampleBook struct {
	Title       string
	Author      string
	Description string
	Price       string
	Stock       int
}

var sampleBooks = []sampleBook{
	{"1984", "George Orwell", "Um clássico distópico sobre vigilância e totalitarismo.", "45.90", 15},
	{"O Senhor dos Anéis: A Sociedade do Anel", "J.R.R. Tolkien", "A épica jornada de Frodo para destruir o Um Anel.", "89.90", 8},
	{"Harry Potter e a Pedra Filosofal", "J.K. Rowling", "O início da jornada mágica de Harry Potter.", "39.90", 20},
	{"O Pequeno Príncipe", "Antoine de Saint-Exupéry", "Uma fábula poética sobre amor, amizade e perda.", "29.90", 25},
	{"Dom Casmurro", "Machado de Assis", "Um dos maiores clássicos da literatura brasileira.", "34.90", 12},
	{"Clean Code", "Robert C. Martin", "Manual essencial para escrever código limpo e manutenível.", "79.90", 10},
	{"O Hobbit", "J.R.R. Tolkien", "A aventura de Bilbo Bolseiro na Terra Média.", "54.90", 2},
	{"Sapiens: Uma Breve História da Humanidade", "Yuval Noah Harari", "Uma jornada fascinante pela história da espécie humana.", "64.90", 18},
	{"A Revolução dos Bichos", "George Orwell", "Uma sátira política sobre poder e corrupção.", "32.90", 0},
	{"O Código Da Vinci", "Dan Brown", "Um thriller envolvente sobre mistérios religiosos.", "49.90", 7},
}

// SeedBooks adds the sample catalog, skipping titles that already exist. It
// returns how many books were created.
func SeedBooks(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0
	for _, s := range sampleBooks {
		desc := s.Description
		book := models.Book{
			Title:         s.Title,
			Author:        s.Author,
			Description:   &desc,
			Price:         decimal.RequireFromString(s.Price),
			StockQuantity: s.Stock,
		}
		res := db.WithContext(ctx).Where(models.Book{Title: s.Title}).FirstOrCreate(&book)
		if res.Error != nil {
			return created, fmt.Errorf("seed book %q: %w", s.Title, res.Error)
		}
		if res.RowsAffected > 0 {
			created++
			log.Printf("✅ '%s' added", s.Title)
		}
	}
	return created, nil
}
