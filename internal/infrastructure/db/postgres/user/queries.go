package user

const (
	SelectUsers = `
		SELECT id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY id
		LIMIT 10 OFFSET ( ($1 - 1) * 10 )
	`
	SelectUserByID = `
		SELECT id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
		FROM users
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	SelectUserByIDWithDeleted = `
		SELECT id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	InsertUser = `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING
		  id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
	`
	UpdateUserByUUID = `
		UPDATE users
		SET email = COALESCE($1, email),
		    password_hash = COALESCE($2, password_hash),
		    role = COALESCE($3, role),
		    updated_at = now()
		WHERE uuid = $4 AND deleted_at IS NULL
		RETURNING
		  id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
	`
	SelectIdByUUID     = `SELECT id FROM users WHERE uuid = $1::uuid AND deleted_at IS NULL`
	SoftDeleteUserByID = `
		UPDATE users
		SET deleted_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING
		  id, uuid, email, password_hash, role, created_at, updated_at, deleted_at
	`
)
