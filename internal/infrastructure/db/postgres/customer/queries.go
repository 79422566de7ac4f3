package customer

// Owner uuids come from joining users twice; customers store the internal
// user ids. The identifier uniqueness is backed by a partial unique index on
// lower(identifier) scoped to deleted_at IS NULL, so a soft-deleted row never
// blocks re-use of its identifier.
const (
	customerColumns = `
		  c.id, c.uuid, c.name, c.surname, c.identifier,
		  c.photo_bucket, c.photo_key, c.photo_file_name, c.photo_mime_type, c.photo_size_bytes, c.photo_url,
		  cb.uuid, lm.uuid,
		  c.created_at, c.updated_at, c.deleted_at`

	ownerJoins = `
		JOIN users cb ON cb.id = c.created_by
		JOIN users lm ON lm.id = c.last_modified_by`

	SelectCustomers = `
		SELECT` + customerColumns + `
		FROM customers c` + ownerJoins + `
		WHERE c.deleted_at IS NULL
		ORDER BY c.id
		LIMIT 10 OFFSET ( ($1 - 1) * 10 )
	`
	SelectCustomersByCreator = `
		SELECT` + customerColumns + `
		FROM customers c` + ownerJoins + `
		WHERE c.created_by = $1 AND c.deleted_at IS NULL
		ORDER BY c.id
	`
	SelectCustomerByID = `
		SELECT` + customerColumns + `
		FROM customers c` + ownerJoins + `
		WHERE c.uuid = $1 AND c.deleted_at IS NULL
	`
	SelectCustomerByIDWithDeleted = `
		SELECT` + customerColumns + `
		FROM customers c` + ownerJoins + `
		WHERE c.uuid = $1
	`
	InsertCustomer = `
		WITH c AS (
			INSERT INTO customers
			  (name, surname, identifier, photo_bucket, photo_key, photo_file_name, photo_mime_type, photo_size_bytes, photo_url, created_by, last_modified_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING *
		)
		SELECT` + customerColumns + `
		FROM c` + ownerJoins + `
	`
	UpdateCustomerByUUID = `
		WITH c AS (
			UPDATE customers
			SET name = COALESCE($1, name),
			    surname = COALESCE($2, surname),
			    identifier = COALESCE($3, identifier),
			    photo_bucket = COALESCE($4, photo_bucket),
			    photo_key = COALESCE($5, photo_key),
			    photo_file_name = COALESCE($6, photo_file_name),
			    photo_mime_type = COALESCE($7, photo_mime_type),
			    photo_size_bytes = COALESCE($8, photo_size_bytes),
			    photo_url = COALESCE($9, photo_url),
			    last_modified_by = $10,
			    updated_at = now()
			WHERE uuid = $11 AND deleted_at IS NULL
			RETURNING *
		)
		SELECT` + customerColumns + `
		FROM c` + ownerJoins + `
	`
	SoftDeleteCustomerByUUID = `
		WITH c AS (
			UPDATE customers
			SET deleted_at = now()
			WHERE uuid = $1 AND deleted_at IS NULL
			RETURNING *
		)
		SELECT` + customerColumns + `
		FROM c` + ownerJoins + `
	`
)
