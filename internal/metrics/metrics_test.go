package metrics

import "testing"

func TestNewDownloadsRegistersAllCollectors(t *testing.T) {
	d := NewDownloads()
	mfs, err := d.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 6 {
		t.Fatalf("expected 6 registered metric families, got %d", len(mfs))
	}
}

func TestDownloadsCountersAreIndependentPerInstance(t *testing.T) {
	a := NewDownloads()
	b := NewDownloads()
	a.FetchesStarted.Inc()

	mfs, err := b.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "mcpkg_fetches_started_total" {
			if got := mf.Metric[0].Counter.GetValue(); got != 0 {
				t.Fatalf("expected independent registry, got %v", got)
			}
		}
	}
}
