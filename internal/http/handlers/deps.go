package handlers

import (
	"github.com/jmoiron/sqlx"

	"tillpoint/internal/repos"
	"tillpoint/internal/services"
	"tillpoint/internal/staging"
)

type Deps struct {
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	ProductHandler *ProductHandler
}

func NewDeps(db *sqlx.DB, sessions *staging.Registry) *Deps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	orderIDs := repos.NewOrderIDs()

	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(db, prodRepo, orderRepo, orderIDs)

	return &Deps{
		CartHandler:    &CartHandler{Sessions: sessions, Products: prodRepo},
		OrderHandler:   &OrderHandler{Sessions: sessions, Order: orderSvc, Repo: orderRepo},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
	}
}
