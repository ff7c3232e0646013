// Command dentara-admin runs maintenance jobs against the clinic database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ariebrainware/dentara-clinic/config"
	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

var errNotManager = errors.New("maintenance requires a manager account")

// services are opened lazily so that commands such as geoip-download work
// without a database.
type services struct {
	db       *gorm.DB
	repos    *repository.Registry
	sessions *session.Manager
	close    func()
}

func openServices(ctx context.Context) (*services, error) {
	cfg := config.LoadConfig()
	db, err := config.ConnectDatabase()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	util.SetSecurityLoggerDB(db)
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	}
	st, closeStore, err := store.FromConfig(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	repos := repository.New(st)
	return &services{
		db:       db,
		repos:    repos,
		sessions: session.NewManager(identity.NewProvider(db), repos.Users),
		close:    closeStore,
	}, nil
}

// managerSession logs in and checks the role. The caller must Logout.
func managerSession(ctx context.Context, m *session.Manager, email, password string) (*session.Context, error) {
	sc := session.NewContext(m, identity.ClientInfo{UserAgent: "dentara-admin"})
	res := sc.Login(ctx, email, password)
	if !res.Success {
		return nil, fmt.Errorf("login: %w", res.Error)
	}
	if !sc.Can(model.RoleManager) {
		_ = sc.Logout(ctx)
		return nil, errNotManager
	}
	return sc, nil
}

func repairDoctorNames(ctx context.Context, s *services, email, password string) (int, error) {
	sc, err := managerSession(ctx, s.sessions, email, password)
	if err != nil {
		return 0, err
	}
	defer func() { _ = sc.Logout(ctx) }()

	_, p := sc.State()
	n, err := s.repos.Appointments.RepairDenormalizedDoctorNames(ctx)
	util.LogDataRepair(p.UID, "repair-doctor-names", n)
	return n, err
}

func revokeSessions(ctx context.Context, s *services, email, password, uid string) error {
	sc, err := managerSession(ctx, s.sessions, email, password)
	if err != nil {
		return err
	}
	defer func() { _ = sc.Logout(ctx) }()

	_, p := sc.State()
	return s.sessions.RevokeAll(ctx, uid, p, identity.ClientInfo{UserAgent: "dentara-admin"})
}

var credentialFlags = []cli.Flag{
	&cli.StringFlag{Name: "email", Usage: "manager email", EnvVars: []string{"DENTARA_ADMIN_EMAIL"}, Required: true},
	&cli.StringFlag{Name: "password", Usage: "manager password", EnvVars: []string{"DENTARA_ADMIN_PASSWORD"}, Required: true},
}

// withServices opens the database for one command and closes it afterwards.
func withServices(run func(*cli.Context, *services) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := openServices(c.Context)
		if err != nil {
			return err
		}
		defer s.close()
		return run(c, s)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dentara-admin",
		Usage: "maintenance jobs for the dentara clinic database",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "create or update the database schema",
				Action: withServices(func(c *cli.Context, s *services) error {
					fmt.Fprintln(c.App.Writer, "schema up to date")
					return nil
				}),
			},
			{
				Name:  "repair-doctor-names",
				Usage: "fill empty doctor_name snapshots on appointments",
				Flags: credentialFlags,
				Action: withServices(func(c *cli.Context, s *services) error {
					n, err := repairDoctorNames(c.Context, s, c.String("email"), c.String("password"))
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "updated %d appointments\n", n)
					return nil
				}),
			},
			{
				Name:      "revoke-sessions",
				Usage:     "sign a user out on every device",
				ArgsUsage: "<uid>",
				Flags:     credentialFlags,
				Action: withServices(func(c *cli.Context, s *services) error {
					uid := c.Args().First()
					if uid == "" {
						return cli.Exit("uid is required", 2)
					}
					if err := revokeSessions(c.Context, s, c.String("email"), c.String("password"), uid); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "sessions of %s revoked\n", uid)
					return nil
				}),
			},
			{
				Name:  "geoip-download",
				Usage: "fetch a GeoLite2 database used by the security log",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "source .mmdb or .mmdb.gz", EnvVars: []string{"GEOIP_DB_URL"}, Required: true},
					&cli.StringFlag{Name: "out", Usage: "destination path", EnvVars: []string{"GEOIP_DB_PATH"}, Value: "data/GeoLite2-City.mmdb"},
				},
				Action: func(c *cli.Context) error {
					path, err := util.DownloadGeoIP(c.Context, c.String("url"), c.String("out"))
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					if err := util.ValidateGeoIP(path); err != nil {
						return cli.Exit(fmt.Sprintf("downloaded file is not a GeoIP database: %v", err), 1)
					}
					fmt.Fprintf(c.App.Writer, "saved %s\n", path)
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
