package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/service-tracking/internal/auth"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"movements",
				"vehicle_shift_assignments",
				"vehicle_driver_assignments",
				"vehicles",
				"drivers",
				"shifts",
				"routes",
				"users",
				"roles",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedRoles(db)
		seedUsers(db, cfg.Security.PBKDF2Iterations)
		seedRoutes(db)
		seedVehicles(db)
		seedDrivers(db)
		seedShifts(db)

		fmt.Println("Seeding completed")
	},
}

func seedRoles(db *gorm.DB) {
	roles := []struct {
		Name string
		Desc string
	}{
		{"admin", "full administrator"},
		{"operator", "records depot movements and manages assignments"},
		{"viewer", "read-only access to fleet data"},
	}

	for _, r := range roles {
		var exists int
		row := db.Raw("SELECT 1 FROM roles WHERE name = ?", r.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO roles (name, description, created_at) VALUES (?, ?, now())", r.Name, r.Desc).Error; err != nil {
			log.Fatalf("failed to insert role %s: %v", r.Name, err)
		}
		fmt.Printf("Seeded role: %s\n", r.Name)
	}
}

func seedUsers(db *gorm.DB, iterations int) {
	hasher := auth.NewPasswordHasher(iterations)
	hash, err := hasher.Hash("admin123")
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []struct {
		FullName string
		Username string
		Email    string
		Role     string
	}{
		{"Depot Administrator", "admin", "admin@depot.local", "admin"},
		{"Gate Operator", "operator", "operator@depot.local", "operator"},
	}

	for _, u := range users {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("user %s already exists; skipping\n", u.Username)
			continue
		}

		var roleID int64
		if err := db.Raw("SELECT id FROM roles WHERE name = ?", u.Role).Row().Scan(&roleID); err != nil {
			log.Fatalf("role %s not found for user %s: %v", u.Role, u.Username, err)
		}

		if err := db.Exec(
			"INSERT INTO users (full_name, username, email, password_hash, role_id, created_at) VALUES (?, ?, ?, ?, ?, now())",
			u.FullName, u.Username, u.Email, hash, roleID,
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Username, err)
		}
		fmt.Printf("Seeded user: %s (%s)\n", u.Username, u.Role)
	}
}

func seedRoutes(db *gorm.DB) {
	routes := []struct {
		Name     string
		Desc     string
		Distance float64
		Duration int
	}{
		{"R1 Central Loop", "city center circular service", 12.5, 45},
		{"R2 Harbor Express", "terminal to harbor district", 18.0, 40},
		{"R3 Airport Shuttle", "terminal to airport via ring road", 24.3, 55},
	}

	for _, r := range routes {
		var exists int
		row := db.Raw("SELECT 1 FROM routes WHERE name = ?", r.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO routes (name, description, distance_km, estimated_duration_min, status, created_at) VALUES (?, ?, ?, ?, 'Active', now())",
			r.Name, r.Desc, r.Distance, r.Duration,
		).Error; err != nil {
			log.Fatalf("failed to insert route %s: %v", r.Name, err)
		}
		fmt.Printf("Seeded route: %s\n", r.Name)
	}
}

func seedVehicles(db *gorm.DB) {
	vehicles := []struct {
		Plate    string
		Brand    string
		Model    string
		Capacity int
		Route    string
	}{
		{"B 7001 TX", "Mercedes-Benz", "OH 1626", 40, "R1 Central Loop"},
		{"B 7002 TX", "Mercedes-Benz", "OH 1626", 40, "R2 Harbor Express"},
		{"B 7003 TX", "Hino", "RK8", 54, "R3 Airport Shuttle"},
	}

	for _, v := range vehicles {
		var exists int
		row := db.Raw("SELECT 1 FROM vehicles WHERE plate_number = ?", v.Plate).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		var routeID int64
		if err := db.Raw("SELECT id FROM routes WHERE name = ?", v.Route).Row().Scan(&routeID); err != nil {
			log.Fatalf("route %s not found for vehicle %s: %v", v.Route, v.Plate, err)
		}

		if err := db.Exec(
			"INSERT INTO vehicles (plate_number, brand, model, capacity, status, route_id, created_at) VALUES (?, ?, ?, ?, 'Active', ?, now())",
			v.Plate, v.Brand, v.Model, v.Capacity, routeID,
		).Error; err != nil {
			log.Fatalf("failed to insert vehicle %s: %v", v.Plate, err)
		}
		fmt.Printf("Seeded vehicle: %s\n", v.Plate)
	}
}

func seedDrivers(db *gorm.DB) {
	drivers := []struct {
		Name  string
		Phone string
	}{
		{"Budi Santoso", "+62-811-1000-001"},
		{"Agus Wijaya", "+62-811-1000-002"},
		{"Siti Rahayu", "+62-811-1000-003"},
	}

	for _, d := range drivers {
		var exists int
		row := db.Raw("SELECT 1 FROM drivers WHERE full_name = ?", d.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO drivers (full_name, phone, status, created_at) VALUES (?, ?, 'Active', now())",
			d.Name, d.Phone,
		).Error; err != nil {
			log.Fatalf("failed to insert driver %s: %v", d.Name, err)
		}
		fmt.Printf("Seeded driver: %s\n", d.Name)
	}
}

func seedShifts(db *gorm.DB) {
	shifts := []struct {
		Name  string
		Start string
		End   string
	}{
		{"Morning", "05:00", "13:00"},
		{"Afternoon", "13:00", "21:00"},
		{"Night", "21:00", "05:00"},
	}

	for _, s := range shifts {
		var exists int
		row := db.Raw("SELECT 1 FROM shifts WHERE name = ?", s.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO shifts (name, start_time, end_time, status, created_at) VALUES (?, ?, ?, 'Active', now())",
			s.Name, s.Start, s.End,
		).Error; err != nil {
			log.Fatalf("failed to insert shift %s: %v", s.Name, err)
		}
		fmt.Printf("Seeded shift: %s\n", s.Name)
	}
}
