package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/catalog"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(userID, req.Name, req.Unit, req.SellingRate, req.TaxPercent)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		product.Description = req.Description
	}
	if req.HSNCode != "" {
		product.HSNCode = req.HSNCode
	}
	if req.PurchaseRate != nil {
		if err := product.SetRates(req.SellingRate, *req.PurchaseRate); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("user_id", userID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	return ToProductResponse(product), nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(*req.Name, description); err != nil {
			return nil, err
		}
	} else if req.Description != nil {
		product.Description = *req.Description
	}

	if req.HSNCode != nil {
		product.HSNCode = *req.HSNCode
	}
	if req.SellingRate != nil || req.PurchaseRate != nil {
		selling := product.SellingRate
		purchase := product.PurchaseRate
		if req.SellingRate != nil {
			selling = *req.SellingRate
		}
		if req.PurchaseRate != nil {
			purchase = *req.PurchaseRate
		}
		if err := product.SetRates(selling, purchase); err != nil {
			return nil, err
		}
	}
	if req.TaxPercent != nil {
		if err := product.SetTaxPercent(*req.TaxPercent); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID returns a product by ID
func (s *ProductService) GetByID(ctx context.Context, userID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns products for the user with pagination
func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	var products []catalog.Product
	var err error
	if filter.Search != "" {
		products, err = s.productRepo.SearchByNameForUser(ctx, userID, filter.Search, f)
	} else {
		products, err = s.productRepo.FindAllForUser(ctx, userID, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *ToProductResponse(&products[i])
	}
	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// AddStock atomically increases a product's stock
func (s *ProductService) AddStock(ctx context.Context, userID, id uuid.UUID, req AddStockRequest) (*ProductResponse, error) {
	if err := s.productRepo.AddStock(ctx, userID, id, req.Quantity); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock added",
		zap.String("product_id", id.String()),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("stock", product.Stock))

	return ToProductResponse(product), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForUser(ctx, userID, id); err != nil {
		return err
	}
	return s.productRepo.DeleteForUser(ctx, userID, id)
}
