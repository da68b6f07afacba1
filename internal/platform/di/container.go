// Package di wires infrastructure clients, outbound adapters and usecases
// into the HTTP router dependencies. Pure DI: build deps only, no routing
// branching.
package di

import (
	"context"
	"errors"
	"log"

	httpin "straightenup/internal/adapters/in/http"
	outdb "straightenup/internal/adapters/out/db"
	outfs "straightenup/internal/adapters/out/firestore"
	gcso "straightenup/internal/adapters/out/gcs"
	httpout "straightenup/internal/adapters/out/http"
	mailout "straightenup/internal/adapters/out/mail"
	usecase "straightenup/internal/application/usecase"
	"straightenup/internal/platform/bus"
	shared "straightenup/internal/platform/di/shared"
)

// Container owns the shared infra, the change bus and every usecase.
type Container struct {
	Infra *shared.Infra
	Bus   *bus.Bus

	AuthUC        *usecase.AuthUsecase
	ProfileUC     *usecase.ProfileUsecase
	ProductUC     *usecase.ProductUsecase
	CartUC        *usecase.CartUsecase
	CheckoutUC    *usecase.CheckoutUsecase
	AddressUC     *usecase.ShippingAddressUsecase
	OrderUC       *usecase.OrderUsecase
	CurrencyUC    *usecase.CurrencyUsecase
	ForumUC       *usecase.ForumUsecase
	SupportUC     *usecase.SupportUsecase
	SiteContentUC *usecase.SiteContentUsecase
}

// NewContainer builds the full dependency graph on top of inf.
func NewContainer(ctx context.Context, inf *shared.Infra) (*Container, error) {
	if inf == nil {
		return nil, errors.New("di: infra is nil")
	}
	if inf.Firestore == nil || inf.Firestore.Client == nil {
		return nil, errors.New("di: firestore client is nil")
	}
	if inf.DB == nil || inf.DB.Client == nil {
		return nil, errors.New("di: postgres client is nil")
	}

	c := &Container{
		Infra: inf,
		Bus:   bus.New(),
	}

	fs := inf.Firestore.Client
	pg := inf.DB.Client

	// Outbound adapters
	cartRepo := outfs.NewCartRepositoryFS(fs)
	addrRepo := outfs.NewShippingAddressRepositoryFS(fs)
	profileRepo := outfs.NewProfileRepositoryFS(fs)
	forumRepo := outfs.NewForumRepositoryFS(fs)
	supportRepo := outfs.NewSupportRepositoryFS(fs)
	siteRepo := outfs.NewSiteContentRepositoryFS(fs)
	productRepo := outdb.NewProductRepositoryPG(pg)
	orderRepo := outdb.NewOrderRepositoryPG(pg)

	var imageStore usecase.ProductImageStore
	if inf.GCS != nil {
		imageStore = gcso.NewProductImageRepositoryGCS(inf.GCS, inf.ProductImageBucket)
	} else {
		log.Printf("[di] GCS unavailable; product image upload disabled")
	}

	var mailer usecase.OrderMailer
	if inf.SendGridAPIKey != "" {
		client := mailout.NewSendGridClient(inf.SendGridAPIKey)
		mailer = mailout.NewOrderConfirmationMailer(client, inf.Config.MailFrom)
	} else {
		log.Printf("[di] SendGrid key unavailable; order confirmation mail disabled")
	}

	rateSource := httpout.NewExchangeRateClient(inf.Config.ExchangeRateBaseURL)
	signInClient := httpout.NewFirebaseSignInClient(inf.Config.FirebaseWebAPIKey)
	userCreator := httpout.NewFirebaseUserCreator(inf.FirebaseAuth)
	paymentAuth := usecase.NewDelayAuthorizer()

	// Usecases
	c.ProfileUC = usecase.NewProfileUsecase(profileRepo, c.Bus)
	c.AuthUC = usecase.NewAuthUsecase(userCreator, signInClient, c.ProfileUC)
	c.ProductUC = usecase.NewProductUsecase(productRepo, imageStore, c.Bus)
	c.CartUC = usecase.NewCartUsecase(cartRepo, c.ProductUC, c.Bus)
	c.AddressUC = usecase.NewShippingAddressUsecase(addrRepo, c.Bus)
	c.OrderUC = usecase.NewOrderUsecase(orderRepo, mailer, c.Bus)
	c.CheckoutUC = usecase.NewCheckoutUsecase(c.CartUC, c.AddressUC, c.OrderUC, paymentAuth)
	c.CurrencyUC = usecase.NewCurrencyUsecase(rateSource)
	c.ForumUC = usecase.NewForumUsecase(forumRepo, c.Bus)
	c.SupportUC = usecase.NewSupportUsecase(supportRepo, c.Bus)
	c.SiteContentUC = usecase.NewSiteContentUsecase(siteRepo, c.Bus)

	return c, nil
}

// RouterDeps exposes the container as router dependencies.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		AuthUC:        c.AuthUC,
		ProfileUC:     c.ProfileUC,
		ProductUC:     c.ProductUC,
		CartUC:        c.CartUC,
		CheckoutUC:    c.CheckoutUC,
		AddressUC:     c.AddressUC,
		OrderUC:       c.OrderUC,
		CurrencyUC:    c.CurrencyUC,
		ForumUC:       c.ForumUC,
		SupportUC:     c.SupportUC,
		SiteContentUC: c.SiteContentUC,

		Bus:          c.Bus,
		FirebaseAuth: c.Infra.FirebaseAuth,
		AllowOrigin:  c.Infra.Config.AllowOrigin,
	}
}

// Close releases the bus and infra clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		c.Bus.Close()
	}
	if c.Infra != nil {
		c.Infra.Close()
	}
}
