package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/citymed/scheduling-agent/internal/patients"
	"github.com/citymed/scheduling-agent/internal/schedule"
	"github.com/citymed/scheduling-agent/pkg/logging"
)

// How many recent bookings the dashboard shows.
const recentBookingsLimit = 10

// Dashboard summarizes the clinic data for operators.
type Dashboard struct {
	Patients       int             `json:"patients"`
	BookedSlots    int             `json:"booked_slots"`
	AvailableSlots int             `json:"available_slots"`
	RecentBookings []schedule.Slot `json:"recent_bookings"`
}

// DashboardHandler serves the operator dashboard from the shared clinic
// stores.
type DashboardHandler struct {
	directory patients.Directory
	schedule  schedule.Store
	logger    *logging.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(directory patients.Directory, store schedule.Store, logger *logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardHandler{directory: directory, schedule: store, logger: logger}
}

// Handle returns patient and booking counts plus the most recent bookings.
// Missing clinic data is reported as 503 so operators see the setup gap
// instead of zeros.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	dash := Dashboard{RecentBookings: []schedule.Slot{}}

	roster, err := h.directory.LoadPatients(r.Context())
	if err != nil {
		h.renderStoreError(w, err)
		return
	}
	dash.Patients = len(roster)

	rows, err := h.schedule.Load(r.Context())
	if err != nil {
		h.renderStoreError(w, err)
		return
	}
	for _, slot := range rows {
		if slot.Available {
			dash.AvailableSlots++
			continue
		}
		dash.BookedSlots++
		dash.RecentBookings = append(dash.RecentBookings, slot)
	}
	if len(dash.RecentBookings) > recentBookingsLimit {
		dash.RecentBookings = dash.RecentBookings[len(dash.RecentBookings)-recentBookingsLimit:]
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dash)
}

func (h *DashboardHandler) renderStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, patients.ErrDirectoryNotFound) || errors.Is(err, schedule.ErrScheduleNotFound) {
		http.Error(w, "clinic data not seeded", http.StatusServiceUnavailable)
		return
	}
	h.logger.Error("dashboard load failed", "error", err)
	http.Error(w, "failed to load clinic data", http.StatusInternalServerError)
}
