package discovery

import "github.com/kubev2v/migration-discovery/internal/models"

// Observer is notified of the progress of a run.
// UnitStarted is called from worker goroutines; the other methods from the Run loop.
type Observer interface {
	UnitStarted(unit models.ScanUnit)
	UnitFinished(result models.ScanResult)
	RunFinished(catalog *models.Catalog)
}

// Observers fans notifications out to several observers.
type Observers []Observer

func (o Observers) UnitStarted(unit models.ScanUnit) {
	for _, obs := range o {
		obs.UnitStarted(unit)
	}
}

func (o Observers) UnitFinished(result models.ScanResult) {
	for _, obs := range o {
		obs.UnitFinished(result)
	}
}

func (o Observers) RunFinished(catalog *models.Catalog) {
	for _, obs := range o {
		obs.RunFinished(catalog)
	}
}
