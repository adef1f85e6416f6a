package fakers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

var categories = []string{models.CategoryMen, models.CategoryWomen, models.CategoryKids}

var sampleImages = []string{
	"sample-shirt.jpg",
	"sample-dress.jpg",
	"sample-hoodie.jpg",
}

func ProductFaker() *models.Product {
	price := decimal.NewFromFloat(fakePrice()).Round(2)
	// cost sits between 40% and 80% of the price
	margin := decimal.NewFromFloat(0.4 + rand.Float64()*0.4)

	return &models.Product{
		Name:     titleCase(faker.Word() + " " + faker.Word()),
		Price:    price,
		Cost:     price.Mul(margin).Round(2),
		Stock:    rand.Intn(40),
		Image:    sampleImages[rand.Intn(len(sampleImages))],
		Category: categories[rand.Intn(len(categories))],
	}
}

func TestimonialFaker() *models.Testimonial {
	return &models.Testimonial{
		Name:    faker.Name(),
		Comment: faker.Sentence(),
	}
}

func fakePrice() float64 {
	return precision(5+rand.Float64()*math.Pow10(rand.Intn(3)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
