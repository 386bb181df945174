package migrate

import (
	"context"

	"shop-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, uuid-ossp
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")

	// Расширения
	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			log.Error("Не удалось включить расширение uuid-ossp", zap.Error(err))
			return err
		}
	}

	// Таблицы
	log.Info("Создание таблиц каталога, корзин и заказов")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Notebook{},
		&models.Smartphone{},
		&models.Customer{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	// Триггеры updated_at
	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
`).Error; err != nil {
			log.Error("Не удалось создать функцию set_updated_at", zap.Error(err))
			return err
		}
		for _, table := range []string{"notebooks", "smartphones", "customers", "carts", "cart_items", "orders"} {
			if err := db.WithContext(ctx).Exec(`
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
				log.Error("Не удалось создать триггер updated_at", zap.String("table", table), zap.Error(err))
				return err
			}
		}
	}

	// CHECK-constraint
	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Статусы заказов (храним TEXT)
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('new','in_progress','ready','completed'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказа", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_buying_type_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_buying_type_allowed
  CHECK (buying_type IN ('self','delivery'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для типа покупки", zap.Error(err))
			return err
		}

		// Количество в позиции > 0
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_gt_zero;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для cart_items.quantity", zap.Error(err))
			return err
		}

		// Цены и итоги неотрицательные
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_prices_non_negative;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_prices_non_negative
  CHECK (unit_price >= 0 AND total_price >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для цен в cart_items", zap.Error(err))
			return err
		}
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE carts
  DROP CONSTRAINT IF EXISTS chk_carts_totals_non_negative;
ALTER TABLE carts
  ADD CONSTRAINT chk_carts_totals_non_negative
  CHECK (total_price >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для carts.total_price", zap.Error(err))
			return err
		}
		for _, table := range []string{"notebooks", "smartphones"} {
			if err := db.WithContext(ctx).Exec(`
ALTER TABLE ` + table + `
  DROP CONSTRAINT IF EXISTS chk_` + table + `_price_non_negative;
ALTER TABLE ` + table + `
  ADD CONSTRAINT chk_` + table + `_price_non_negative
  CHECK (price >= 0);
`).Error; err != nil {
				log.Error("Не удалось создать CHECK для цены товара", zap.String("table", table), zap.Error(err))
				return err
			}
		}

		// Тег варианта в позиции корзины
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_kind_allowed;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_kind_allowed
  CHECK (product_kind IN ('notebook','smartphone'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для product_kind", zap.Error(err))
			return err
		}

		log.Info("CHECK-ограничения успешно созданы")
	}

	// Индексы
	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// Композитный UNIQUE(cart_id, product_kind, product_id) на случай если тегами не создался
		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_cart_items_cart_product
ON cart_items (cart_id, product_kind, product_id);
`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс ux_cart_items_cart_product", zap.Error(err))
			return err
		}

		// Заказы покупателя по дате
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_customer_created
ON orders (customer_id, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_customer_created", zap.Error(err))
			return err
		}

		// Активная корзина владельца
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_carts_owner_active
ON carts (owner_id) WHERE in_order = false;
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_carts_owner_active", zap.Error(err))
			return err
		}

		log.Info("Индексы успешно созданы")
	}

	// Внешние ключи
	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		type fk struct {
			name, sql string
		}
		fks := []fk{
			{"fk_cart_items_cart", `
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_cart,
  ADD CONSTRAINT fk_cart_items_cart
    FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE;`},
			{"fk_carts_owner", `
ALTER TABLE carts
  DROP CONSTRAINT IF EXISTS fk_carts_owner,
  ADD CONSTRAINT fk_carts_owner
    FOREIGN KEY (owner_id) REFERENCES customers(id) ON DELETE CASCADE;`},
			{"fk_orders_customer", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_customer,
  ADD CONSTRAINT fk_orders_customer
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE;`},
			{"fk_orders_cart", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_cart,
  ADD CONSTRAINT fk_orders_cart
    FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE;`},
			{"fk_notebooks_category", `
ALTER TABLE notebooks
  DROP CONSTRAINT IF EXISTS fk_notebooks_category,
  ADD CONSTRAINT fk_notebooks_category
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE;`},
			{"fk_smartphones_category", `
ALTER TABLE smartphones
  DROP CONSTRAINT IF EXISTS fk_smartphones_category,
  ADD CONSTRAINT fk_smartphones_category
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE;`},
		}
		for _, f := range fks {
			if err := db.WithContext(ctx).Exec(f.sql).Error; err != nil {
				log.Error("Не удалось создать внешний ключ", zap.String("fk", f.name), zap.Error(err))
				return err
			}
		}

		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
