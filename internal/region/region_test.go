package region

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    Region
	}{
		{"plain", "Jl. Kebon Sirih, Jakarta Pusat", JakartaPusat},
		{"uppercase", "JAKARTA UTARA", JakartaUtara},
		{"double space", "JAKARTA  SELATAN", JakartaSelatan},
		{"no space", "JAKARTATIMUR", JakartaTimur},
		{"trailing country", "Jakarta Selatan, Indonesia", JakartaSelatan},
		{"mixed case", "jakarta barat 11530", JakartaBarat},
		{"kepulauan full", "Kepulauan Seribu", KepulauanSeribu},
		{"kep abbreviated", "KEP SERIBU", KepulauanSeribu},
		{"kep dotted", "Kep. Seribu", KepulauanSeribu},
		{"outside jakarta", "BANDUNG", Unknown},
		{"empty", "", Unknown},
		{"jakarta without wilayah", "Jakarta", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.address); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestAllOrderAndColumnNames(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("All() returned %d regions, want 6", len(all))
	}
	if all[0] != JakartaPusat || all[5] != KepulauanSeribu {
		t.Errorf("All() priority order wrong: %v", all)
	}

	wantCols := map[Region]string{
		JakartaPusat:    "trx_pusat",
		KepulauanSeribu: "trx_kepulauan_seribu",
	}
	for r, want := range wantCols {
		if got := r.ColumnName(); got != want {
			t.Errorf("%q.ColumnName() = %q, want %q", r, got, want)
		}
	}
}
