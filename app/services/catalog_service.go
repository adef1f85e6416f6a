package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/shopspring/decimal"
)

// ProductInput holds the fields of a product form. Nil means the field was not sent.
type ProductInput struct {
	Name     *string
	Price    *decimal.Decimal
	Cost     *decimal.Decimal
	Stock    *int
	Category *string
}

type ProductService struct {
	productRepo repositories.ProductRepositoryImpl
}

func NewProductService(productRepo repositories.ProductRepositoryImpl) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetProducts(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create stores a new product. image is the stored upload filename and is required.
func (s *ProductService) Create(ctx context.Context, input ProductInput, image string) (*models.Product, error) {
	if image == "" {
		return nil, invalid("Image is required")
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, invalid("Name is required")
	}
	if input.Price == nil {
		return nil, invalid("Price is required")
	}
	if input.Cost == nil {
		return nil, invalid("Cost is required")
	}

	product := &models.Product{Image: image, Category: models.CategoryMen}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	product.ImageURL = models.ImageURL(product.Image)
	return product, nil
}

// Update changes only the provided fields. When image is set, the replaced filename is
// returned so the caller can remove it.
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput, image string) (*models.Product, string, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, "", err
	}

	var replaced string
	if image != "" {
		replaced, product.Image = product.Image, image
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, "", err
	}
	product.ImageURL = models.ImageURL(product.Image)
	return product, replaced, nil
}

// Delete removes the product and returns its image filename.
func (s *ProductService) Delete(ctx context.Context, id string) (string, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", ErrProductNotFound
	}
	return product.Image, nil
}

func applyProductInput(product *models.Product, input ProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return invalid("Name cannot be empty")
		}
		product.Name = name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return invalid("Price cannot be less than 0")
		}
		product.Price = *input.Price
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return invalid("Cost cannot be less than 0")
		}
		product.Cost = *input.Cost
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return invalid("Stock cannot be less than 0")
		}
		product.Stock = *input.Stock
	}
	if input.Category != nil && *input.Category != "" {
		category := strings.ToLower(strings.TrimSpace(*input.Category))
		if !models.ValidCategory(category) {
			return invalid("Category must be one of: men, women, kids")
		}
		product.Category = category
	}
	return nil
}

// TestimonialInput mirrors ProductInput for testimonials.
type TestimonialInput struct {
	Name    *string
	Comment *string
}

type TestimonialService struct {
	repo repositories.TestimonialRepository
}

func NewTestimonialService(repo repositories.TestimonialRepository) *TestimonialService {
	return &TestimonialService{repo: repo}
}

func (s *TestimonialService) List(ctx context.Context) ([]models.Testimonial, error) {
	return s.repo.FindAll(ctx)
}

func (s *TestimonialService) Create(ctx context.Context, input TestimonialInput, image string) (*models.Testimonial, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, invalid("Name is required")
	}
	if input.Comment == nil || strings.TrimSpace(*input.Comment) == "" {
		return nil, invalid("Comment is required")
	}

	testimonial := &models.Testimonial{
		Name:    strings.TrimSpace(*input.Name),
		Comment: strings.TrimSpace(*input.Comment),
		Image:   image,
	}
	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, err
	}
	testimonial.ImageURL = models.ImageURL(testimonial.Image)
	return testimonial, nil
}

func (s *TestimonialService) Update(ctx context.Context, id string, input TestimonialInput, image string) (*models.Testimonial, string, error) {
	testimonial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if testimonial == nil {
		return nil, "", ErrTestimonialNotFound
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		testimonial.Name = strings.TrimSpace(*input.Name)
	}
	if input.Comment != nil && strings.TrimSpace(*input.Comment) != "" {
		testimonial.Comment = strings.TrimSpace(*input.Comment)
	}

	var replaced string
	if image != "" {
		replaced, testimonial.Image = testimonial.Image, image
	}
	if err := s.repo.Update(ctx, testimonial); err != nil {
		return nil, "", err
	}
	testimonial.ImageURL = models.ImageURL(testimonial.Image)
	return testimonial, replaced, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id string) (string, error) {
	testimonial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if testimonial == nil {
		return "", ErrTestimonialNotFound
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", ErrTestimonialNotFound
	}
	return testimonial.Image, nil
}
