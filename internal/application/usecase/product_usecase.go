package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	productdom "straightenup/internal/domain/product"
)

var (
	ErrProductInvalidArgument = errors.New("product_usecase: invalid argument")
	ErrProductNotFound        = errors.New("product_usecase: not found")
)

// ProductImageStore is the outbound port for admin image uploads (GCS).
type ProductImageStore interface {
	// Save writes the image bytes and returns a public URL.
	Save(ctx context.Context, productID, filename, contentType string, data []byte) (string, error)
}

// ProductUsecase coordinates catalog reads and admin catalog management.
type ProductUsecase struct {
	repo   productdom.Repository
	images ProductImageStore
	clock  Clock
	notify ChangeNotifier
}

func NewProductUsecase(repo productdom.Repository, images ProductImageStore, notify ChangeNotifier) *ProductUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &ProductUsecase{repo: repo, images: images, clock: systemClock{}, notify: notify}
}

// NewProductUsecaseWithClock is useful for tests.
func NewProductUsecaseWithClock(repo productdom.Repository, images ProductImageStore, notify ChangeNotifier, clock Clock) *ProductUsecase {
	uc := NewProductUsecase(repo, images, notify)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

func (uc *ProductUsecase) Get(ctx context.Context, id string) (*productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, ErrProductInvalidArgument
	}
	p, err := uc.repo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (uc *ProductUsecase) List(ctx context.Context, f productdom.Filter) ([]productdom.Product, error) {
	return uc.repo.List(ctx, f)
}

// CreateProductInput mirrors the admin product form.
type CreateProductInput struct {
	Name        string
	PriceCents  int64
	Description string
	ImageURL    string
	Category    string
	Rating      float64
	Features    []string
	InStock     bool
	PreOrder    bool
}

func (uc *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (productdom.Product, error) {
	p, err := productdom.New(
		uuid.NewString(), in.Name, in.PriceCents, in.Description, in.ImageURL,
		in.Category, in.Rating, in.Features, in.InStock, in.PreOrder,
		uc.clock.Now(),
	)
	if err != nil {
		return productdom.Product{}, err
	}
	if err := uc.repo.Insert(ctx, p); err != nil {
		return productdom.Product{}, err
	}
	uc.notify.Notify("products")
	return p, nil
}

func (uc *ProductUsecase) Update(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	cur, err := uc.Get(ctx, id)
	if err != nil {
		return productdom.Product{}, err
	}
	next, err := cur.Apply(patch, uc.clock.Now())
	if err != nil {
		return productdom.Product{}, err
	}
	if err := uc.repo.Update(ctx, next); err != nil {
		return productdom.Product{}, err
	}
	uc.notify.Notify("products")
	return next, nil
}

func (uc *ProductUsecase) Delete(ctx context.Context, id string) error {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return ErrProductInvalidArgument
	}
	if err := uc.repo.Delete(ctx, pid); err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	uc.notify.Notify("products")
	return nil
}

// UploadImage stores the image and points the product's ImageURL at it.
func (uc *ProductUsecase) UploadImage(ctx context.Context, id, filename, contentType string, data []byte) (productdom.Product, error) {
	if uc.images == nil {
		return productdom.Product{}, errors.New("product_usecase: image store is not configured")
	}
	pid := strings.TrimSpace(id)
	if pid == "" || len(data) == 0 {
		return productdom.Product{}, ErrProductInvalidArgument
	}

	url, err := uc.images.Save(ctx, pid, filename, contentType, data)
	if err != nil {
		return productdom.Product{}, err
	}
	return uc.Update(ctx, pid, productdom.Patch{ImageURL: &url})
}
