package domain

// Tables enumerates every model migrated at startup. Catalog tables are
// created per category from the shared Product shape (see MigrateDB);
// only order storage is listed here.
var Tables = []interface{}{
	&Order{},
	&OrderItem{},
}
