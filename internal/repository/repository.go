package repository

import "gorm.io/gorm"

type Repository struct {
	DB          *gorm.DB
	Categories  CategoryRepo
	Notebooks   NotebookRepo
	Smartphones SmartphoneRepo
	Customers   CustomerRepo
	Carts       CartRepo
	CartItems   CartItemRepo
	Orders      OrderRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		Categories:  NewCategoryRepo(db),
		Notebooks:   NewNotebookRepo(db),
		Smartphones: NewSmartphoneRepo(db),
		Customers:   NewCustomerRepo(db),
		Carts:       NewCartRepo(db),
		CartItems:   NewCartItemRepo(db),
		Orders:      NewOrderRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }
