package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
	"github.com/Informaticspro/proyecto-factura/internal/ws"
	"github.com/Informaticspro/proyecto-factura/pkg/validator"
)

type ProductService interface {
	CreateProduct(p *model.Product) (uint, error)
	GetProduct(id uint) (*model.Product, error)
	ListProducts(category string) ([]model.Product, error)
	UpdateProduct(id uint, patch model.ProductPatch) error
	DeleteProduct(id uint) error
	ListCategories() ([]model.Category, error)
	UpsertCategory(name string) error
}

type productService struct {
	store storage.Store
	hub   *ws.Hub
	log   *zap.Logger
}

func NewProductService(store storage.Store, hub *ws.Hub, log *zap.Logger) ProductService {
	return &productService{store: store, hub: hub, log: log}
}

func (s *productService) CreateProduct(p *model.Product) (uint, error) {
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return 0, validationError(errs[0])
	}

	id, err := s.store.CreateProduct(p)
	if err != nil {
		s.log.Error("create product failed", zap.String("name", p.Name), zap.Error(err))
		return 0, err
	}

	s.log.Info("product created", zap.Uint("product_id", id), zap.String("name", p.Name))
	s.publish("product_created", p)
	return id, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	return s.store.GetProduct(id)
}

func (s *productService) ListProducts(category string) ([]model.Product, error) {
	return s.store.ListProducts(storage.ProductFilter{Category: category})
}

func (s *productService) UpdateProduct(id uint, patch model.ProductPatch) error {
	if patch.Empty() {
		return nil
	}
	if errs := validator.ValidateStruct(&patch); len(errs) > 0 {
		return validationError(errs[0])
	}

	if err := s.store.UpdateProduct(id, patch); err != nil {
		return err
	}

	s.log.Info("product updated", zap.Uint("product_id", id))
	s.publish("product_updated", map[string]interface{}{"id": id})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.Uint("product_id", id))
	s.publish("product_deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *productService) ListCategories() ([]model.Category, error) {
	return s.store.ListCategories()
}

// UpsertCategory is idempotent; a blank name is a silent no-op, same as
// repeating an existing one.
func (s *productService) UpsertCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.store.UpsertCategory(name)
}

func (s *productService) publish(action string, payload interface{}) {
	if s.hub != nil {
		s.hub.Publish(ws.Event{Type: "stock_update", Action: action, Payload: payload})
	}
}

func validationError(e *validator.ErrorResponse) error {
	return &storage.ValidationError{Field: e.FailedField, Tag: e.Tag}
}
