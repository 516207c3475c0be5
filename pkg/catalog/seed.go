package catalog

import (
	"context"

	"github.com/pharmakart/platform/pkg/common/logger"
	"gorm.io/datatypes"
)

type seedProduct struct {
	product     Product
	composition string
}

// Seed inserts a starter formulary when the product table is empty so a
// fresh deployment can serve matches immediately.
func (r *Repository) Seed(ctx context.Context) error {
	count, err := r.CountProducts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []seedProduct{
		{
			product: Product{
				Name: "Crocin 650", BrandName: "Crocin", GenericName: "Paracetamol",
				Manufacturer: "GSK", Form: "tablet", Strength: "650mg",
				UnitPrice: 2.10, StockQuantity: 480, Active: true,
			},
			composition: "Paracetamol 650mg",
		},
		{
			product: Product{
				Name: "Dolo 650", BrandName: "Dolo", GenericName: "Paracetamol",
				Manufacturer: "Micro Labs", Form: "tablet", Strength: "650mg",
				UnitPrice: 1.90, StockQuantity: 620, Active: true,
			},
			composition: "Paracetamol 650mg",
		},
		{
			product: Product{
				Name: "Calpol 500", BrandName: "Calpol", GenericName: "Paracetamol",
				Manufacturer: "GSK", Form: "tablet", Strength: "500mg",
				UnitPrice: 1.40, StockQuantity: 300, Active: true,
			},
			composition: "Paracetamol 500mg",
		},
		{
			product: Product{
				Name: "Augmentin 625 Duo", BrandName: "Augmentin", GenericName: "Amoxicillin + Clavulanic Acid",
				Manufacturer: "GSK", Form: "tablet", Strength: "625mg",
				UnitPrice: 22.50, StockQuantity: 140, PrescriptionRequired: true, Active: true,
			},
			composition: "Amoxicillin 500mg + Clavulanic Acid 125mg",
		},
		{
			product: Product{
				Name: "Moxikind-CV 625", BrandName: "Moxikind", GenericName: "Amoxicillin + Clavulanic Acid",
				Manufacturer: "Mankind", Form: "tablet", Strength: "625mg",
				UnitPrice: 15.80, StockQuantity: 210, PrescriptionRequired: true, Active: true,
			},
			composition: "Amoxicillin 500mg + Clavulanic Acid 125mg",
		},
		{
			product: Product{
				Name: "Azithral 500", BrandName: "Azithral", GenericName: "Azithromycin",
				Manufacturer: "Alembic", Form: "tablet", Strength: "500mg",
				UnitPrice: 19.70, StockQuantity: 160, PrescriptionRequired: true, Active: true,
			},
			composition: "Azithromycin 500mg",
		},
		{
			product: Product{
				Name: "Brufen 400", BrandName: "Brufen", GenericName: "Ibuprofen",
				Manufacturer: "Abbott", Form: "tablet", Strength: "400mg",
				UnitPrice: 1.80, StockQuantity: 390, Active: true,
			},
			composition: "Ibuprofen 400mg",
		},
		{
			product: Product{
				Name: "Cetzine 10", BrandName: "Cetzine", GenericName: "Cetirizine",
				Manufacturer: "Dr. Reddy's", Form: "tablet", Strength: "10mg",
				UnitPrice: 1.20, StockQuantity: 520, Active: true,
			},
			composition: "Cetirizine 10mg",
		},
		{
			product: Product{
				Name: "Omez 20", BrandName: "Omez", GenericName: "Omeprazole",
				Manufacturer: "Dr. Reddy's", Form: "capsule", Strength: "20mg",
				UnitPrice: 3.60, StockQuantity: 260, Active: true,
			},
			composition: "Omeprazole 20mg",
		},
		{
			product: Product{
				Name: "Glycomet 500", BrandName: "Glycomet", GenericName: "Metformin",
				Manufacturer: "USV", Form: "tablet", Strength: "500mg",
				UnitPrice: 1.60, StockQuantity: 450, PrescriptionRequired: true, Active: true,
			},
			composition: "Metformin 500mg",
		},
	}

	for i := range seeds {
		seeds[i].product.Attributes = datatypes.JSONMap{"source": "seed"}
		if err := r.SaveProduct(ctx, &seeds[i].product, seeds[i].composition); err != nil {
			return err
		}
	}

	logger.Log.WithField("products", len(seeds)).Info("Seeded catalog formulary")
	return nil
}
