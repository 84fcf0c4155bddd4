package store

const (
	upsertProduct = `
		INSERT INTO products (
			sync_id,
			name,
			image_uri,
			count,
			packaging,
			mrp,
			pp,
			last_updated,
			updated_by,
			version,
			deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT(sync_id) DO UPDATE SET
			name         = excluded.name,
			image_uri    = excluded.image_uri,
			count        = excluded.count,
			packaging    = excluded.packaging,
			mrp          = excluded.mrp,
			pp           = excluded.pp,
			last_updated = excluded.last_updated,
			updated_by   = excluded.updated_by,
			version      = excluded.version,
			deleted      = excluded.deleted;`

	getProduct = `
		SELECT
			local_id,
			sync_id,
			name,
			image_uri,
			count,
			packaging,
			mrp,
			pp,
			last_updated,
			updated_by,
			version,
			deleted
		FROM products
		WHERE sync_id = $1;`

	getAllProducts = `
		SELECT
			local_id,
			sync_id,
			name,
			image_uri,
			count,
			packaging,
			mrp,
			pp,
			last_updated,
			updated_by,
			version,
			deleted
		FROM products
		WHERE deleted = 0
		ORDER BY local_id;`

	getAllProductsWithDeleted = `
		SELECT
			local_id,
			sync_id,
			name,
			image_uri,
			count,
			packaging,
			mrp,
			pp,
			last_updated,
			updated_by,
			version,
			deleted
		FROM products
		ORDER BY local_id;`

	getChangedSince = `
		SELECT
			local_id,
			sync_id,
			name,
			image_uri,
			count,
			packaging,
			mrp,
			pp,
			last_updated,
			updated_by,
			version,
			deleted
		FROM products
		WHERE last_updated > $1 AND updated_by = $2
		ORDER BY last_updated;`

	countChangedSince = `
		SELECT COUNT(*)
		FROM products
		WHERE last_updated > $1 AND updated_by = $2;`

	softDeleteProduct = `
		UPDATE products SET
			deleted      = 1,
			version      = version + 1,
			last_updated = $1,
			updated_by   = $2
		WHERE sync_id = $3;`
)
