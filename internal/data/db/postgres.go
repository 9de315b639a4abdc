package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/envutil"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(logg *logger.Logger) (*PostgresService, error) {
	serviceLog := logg.With("service", "PostgresService")

	postgresHost := envutil.GetEnv("POSTGRES_HOST", "localhost", logg)
	postgresPort := envutil.GetEnv("POSTGRES_PORT", "5432", logg)
	postgresUser := envutil.GetEnv("POSTGRES_USER", "postgres", logg)
	postgresPassword := envutil.GetEnv("POSTGRES_PASSWORD", "", logg)
	postgresName := envutil.GetEnv("POSTGRES_NAME", "gare", logg)

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser,
		postgresPassword,
		postgresHost,
		postgresPort,
		postgresName,
	)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.UserToken{},
		&domain.Person{},
		&domain.Individual{},
		&domain.LegalEntity{},
		&domain.Address{},
		&domain.CompanyContact{},
		&domain.Partner{},
		&domain.Relationship{},
		&domain.Photo{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_usuario_token_user_id", `ALTER TABLE "usuario_token" ADD CONSTRAINT "fk_usuario_token_user_id" FOREIGN KEY ("user_id") REFERENCES "usuarios"("id") ON DELETE CASCADE`},
		{"fk_pessoa_fisica_pessoa_id", `ALTER TABLE "pessoa_fisica" ADD CONSTRAINT "fk_pessoa_fisica_pessoa_id" FOREIGN KEY ("pessoa_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_pessoa_juridica_pessoa_id", `ALTER TABLE "pessoa_juridica" ADD CONSTRAINT "fk_pessoa_juridica_pessoa_id" FOREIGN KEY ("pessoa_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_endereco_pessoa_id", `ALTER TABLE "endereco" ADD CONSTRAINT "fk_endereco_pessoa_id" FOREIGN KEY ("pessoa_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_contato_empresa_empresa_id", `ALTER TABLE "contato_empresa" ADD CONSTRAINT "fk_contato_empresa_empresa_id" FOREIGN KEY ("empresa_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_socio_empresa_empresa_id", `ALTER TABLE "socio_empresa" ADD CONSTRAINT "fk_socio_empresa_empresa_id" FOREIGN KEY ("empresa_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_socio_empresa_pessoa_id", `ALTER TABLE "socio_empresa" ADD CONSTRAINT "fk_socio_empresa_pessoa_id" FOREIGN KEY ("pessoa_id") REFERENCES "pessoa"("id") ON DELETE SET NULL`},
		{"fk_relacionamento_pessoa_origem_id", `ALTER TABLE "relacionamento" ADD CONSTRAINT "fk_relacionamento_pessoa_origem_id" FOREIGN KEY ("pessoa_origem_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_relacionamento_pessoa_destino_id", `ALTER TABLE "relacionamento" ADD CONSTRAINT "fk_relacionamento_pessoa_destino_id" FOREIGN KEY ("pessoa_destino_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
		{"fk_fotos_pessoa_id", `ALTER TABLE "fotos" ADD CONSTRAINT "fk_fotos_pessoa_id" FOREIGN KEY ("pessoa_id") REFERENCES "pessoa"("id") ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		var count int64
		if err := s.db.Raw(
			`SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?`,
			c.name,
		).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			s.log.Error("Failed to add foreign key constraint", "constraint", c.name, "error", err)
			return err
		}
	}
	return nil
}
