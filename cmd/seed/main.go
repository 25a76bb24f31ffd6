package main

import (
	"fmt"
	"log"

	"github.com/dealerhub/dealerhub-backend/config"
	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	"github.com/dealerhub/dealerhub-backend/internal/db"
)

// Seeds a demo tenant with a small catalog schema, one dealer and a few
// products, then derives filters from the filterable fields.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	gdb := db.GetDB()

	featureRepo := repository.NewFeatureRepository(gdb)
	sectionRepo := repository.NewSectionRepository(gdb)
	fieldRepo := repository.NewFieldRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	dealerRepo := repository.NewDealerRepository(gdb)
	filterRepo := repository.NewFilterRepository(gdb)

	featureService := service.NewFeatureService(featureRepo)
	schemaService := service.NewSchemaService(gdb, sectionRepo, fieldRepo, featureService)
	productService := service.NewProductService(gdb, productRepo, fieldRepo, featureService)
	dealerService := service.NewDealerService(gdb, dealerRepo, fieldRepo)
	filterService := service.NewFilterService(gdb, filterRepo, fieldRepo, featureService)

	tenant := &model.Tenant{Name: "Demo Marketplace"}
	if err := gdb.Create(tenant).Error; err != nil {
		log.Fatal("Failed to create demo tenant:", err)
	}
	fmt.Printf("Created tenant %s (%s)\n", tenant.Name, tenant.ID)

	for _, feature := range []string{model.FeatureProducts, model.FeatureFilters} {
		if err := featureService.SetFeature(tenant.ID, feature, true); err != nil {
			log.Fatal("Failed to enable feature:", err)
		}
	}

	section, err := schemaService.CreateSection(tenant.ID, "General")
	if err != nil {
		log.Fatal("Failed to create section:", err)
	}

	fields := []service.FieldSpec{
		{
			SectionID:       section.ID,
			Name:            "Color",
			FieldType:       model.FieldTypeDropdown,
			VisibleToDealer: true,
			Filterable:      true,
			AutoSyncEnabled: true,
			Visible:         true,
			Options:         []string{"Red", "Green", "Blue"},
		},
		{
			SectionID:       section.ID,
			Name:            "Size",
			FieldType:       model.FieldTypeDropdown,
			VisibleToDealer: true,
			Filterable:      true,
			Visible:         true,
			Options:         []string{"S", "M", "L"},
		},
		{
			SectionID:       section.ID,
			Name:            "InternalSKU",
			FieldType:       model.FieldTypeText,
			VisibleToDealer: false,
			Visible:         true,
		},
	}
	for _, spec := range fields {
		if _, err := schemaService.CreateField(tenant.ID, spec); err != nil {
			log.Fatal("Failed to create field:", err)
		}
	}
	fmt.Printf("Created section %q with %d fields\n", section.Name, len(fields))

	dealer, err := dealerService.CreateDealer(tenant.ID, service.DealerSpec{
		DealerName:    "Demo Dealer",
		BusinessName:  "Demo Dealer LLC",
		BusinessEmail: "business@demo-dealer.example",
		ContactEmail:  "contact@demo-dealer.example",
		Country:       "US",
		State:         "CA",
		City:          "San Francisco",
		Timezone:      "America/Los_Angeles",
	})
	if err != nil {
		log.Fatal("Failed to create dealer:", err)
	}
	fmt.Printf("Created dealer %s with virtual number %s\n", dealer.DealerName, dealer.VirtualNumber)

	products := []map[string]string{
		{"Color": "Red", "Size": "M"},
		{"Color": "Green", "Size": "L"},
		{"Color": "Blue", "Size": "S"},
	}
	for _, fieldValues := range products {
		if _, err := productService.CreateProduct(tenant.ID, dealer.ID, fieldValues); err != nil {
			log.Fatal("Failed to create product:", err)
		}
	}
	fmt.Printf("Created %d products\n", len(products))

	created, err := filterService.SyncFromFields(tenant.ID)
	if err != nil {
		log.Fatal("Failed to sync filters:", err)
	}
	fmt.Printf("Synced %d filters from filterable fields\n", created)

	fmt.Println("Seed completed successfully!")
	fmt.Printf("Use X-Tenant-ID: %s\n", tenant.ID)
}
