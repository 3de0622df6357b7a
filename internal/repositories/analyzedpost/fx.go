package analyzedpost

import (
	"go.uber.org/fx"
)

// PgxModule stores posts in Postgres through the shared pgx pool.
var PgxModule = fx.Module("analyzed_post_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)

// SQLiteModule stores posts in the local SQLite file.
var SQLiteModule = fx.Module("analyzed_post_repository",
	fx.Provide(
		fx.Annotate(
			NewSQLite,
			fx.As(new(Repository)),
		),
	),
)
