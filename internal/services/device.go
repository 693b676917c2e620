package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/repos"
	"github.com/akvideo/technikliste-backend/internal/types"
)

// Sort columns offered by the dashboard, by their display names.
var SortColumns = []string{"Index", "Menge", "Gerätebezeichnung", "Lagerort", "Kategorie", "Preis"}

const (
	OrderAscending  = "aufsteigend"
	OrderDescending = "absteigend"
)

// unpriced devices sort last, the legacy sheet used this sentinel
const unpricedSortValue = 99999

// DeviceFilter mirrors the sidebar filters of the dashboard. Empty slices
// and strings mean "no restriction".
type DeviceFilter struct {
	Search     string   `json:"search"`
	Indices    []int    `json:"indices"`
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	Containers []string `json:"containers"`
	Brands     []string `json:"brands"`
}

// Empty reports whether the filter restricts anything at all.
func (f DeviceFilter) Empty() bool {
	return f.Search == "" && len(f.Indices) == 0 && len(f.Categories) == 0 &&
		len(f.Locations) == 0 && len(f.Containers) == 0 && len(f.Brands) == 0
}

type Overview struct {
	Total        int      `json:"total"`
	InMedienraum int      `json:"in_medienraum"`
	Categories   []string `json:"categories"`
	Locations    []string `json:"locations"`
	Containers   []string `json:"containers"`
	Brands       []string `json:"brands"`
}

type DeviceService interface {
	ListAll(ctx context.Context) ([]types.Device, error)
	Overview(ctx context.Context) (*Overview, error)
}

type deviceService struct {
	deviceRepo repos.DeviceRepo
	log        *logger.Logger
}

func NewDeviceService(deviceRepo repos.DeviceRepo, log *logger.Logger) DeviceService {
	return &deviceService{deviceRepo: deviceRepo, log: log.With("service", "DeviceService")}
}

func (ds *deviceService) ListAll(ctx context.Context) ([]types.Device, error) {
	return ds.deviceRepo.ListAll(ctx)
}

func (ds *deviceService) Overview(ctx context.Context) (*Overview, error) {
	devices, err := ds.deviceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ov := &Overview{Total: len(devices)}
	for _, d := range devices {
		if d.Location == "Medienraum" {
			ov.InMedienraum++
		}
	}
	ov.Categories = uniqueCategories(devices)
	ov.Locations = uniqueValues(devices, func(d types.Device) string { return d.Location })
	ov.Containers = uniqueValues(devices, func(d types.Device) string { return d.Container })
	ov.Brands = uniqueValues(devices, func(d types.Device) string { return d.Brand })
	return ov, nil
}

// uniqueCategories splits the comma separated category tags of every device
// into one sorted, de-duplicated list.
func uniqueCategories(devices []types.Device) []string {
	set := make(map[string]struct{})
	for _, d := range devices {
		for _, keyword := range strings.Split(d.Category, ",") {
			keyword = strings.TrimSpace(keyword)
			if keyword != "" {
				set[keyword] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func uniqueValues(devices []types.Device, get func(types.Device) string) []string {
	set := make(map[string]struct{})
	for _, d := range devices {
		if v := get(d); v != "" {
			set[v] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SelectDevices applies the sidebar filters to the full inventory.
func SelectDevices(devices []types.Device, filter DeviceFilter) []types.Device {
	selected := make([]types.Device, 0, len(devices))
	for _, d := range devices {
		if matchesFilter(d, filter) {
			selected = append(selected, d)
		}
	}
	return selected
}

func matchesFilter(d types.Device, filter DeviceFilter) bool {
	if len(filter.Indices) != 0 && !containsInt(filter.Indices, d.Index) {
		return false
	}
	if len(filter.Categories) != 0 {
		matched := false
		for _, selected := range filter.Categories {
			if strings.Contains(strings.ToLower(d.Category), strings.ToLower(selected)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(filter.Locations) != 0 && !containsString(filter.Locations, d.Location) {
		return false
	}
	if len(filter.Containers) != 0 && !containsString(filter.Containers, d.Container) {
		return false
	}
	if len(filter.Brands) != 0 && !containsString(filter.Brands, d.Brand) {
		return false
	}
	if filter.Search != "" {
		haystack := strings.ToLower(searchText(d))
		for _, keyword := range strings.Fields(filter.Search) {
			if !strings.Contains(haystack, strings.ToLower(keyword)) {
				return false
			}
		}
	}
	return true
}

// searchText concatenates every field of the device, the free text search
// matches against the whole row.
func searchText(d types.Device) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.Index))
	b.WriteString(strconv.Itoa(d.Amount))
	b.WriteString(d.Description)
	b.WriteString(d.Location)
	b.WriteString(d.LocationPrec)
	b.WriteString(d.Container)
	b.WriteString(d.Category)
	b.WriteString(d.Brand)
	if d.Price != nil {
		b.WriteString(strconv.FormatFloat(*d.Price, 'f', 2, 64))
	}
	b.WriteString(d.Store)
	b.WriteString(d.Comments)
	b.WriteString(d.ID)
	return b.String()
}

// SortDevices orders the selection by the two given display columns. Both
// columns follow the same direction, unknown column names fall back to
// Index.
func SortDevices(devices []types.Device, sortBy, sortBy2, order string) []types.Device {
	sorted := make([]types.Device, len(devices))
	copy(sorted, devices)
	ascending := order != OrderDescending
	sort.SliceStable(sorted, func(i, j int) bool {
		c := compareColumn(sorted[i], sorted[j], sortBy)
		if c == 0 {
			c = compareColumn(sorted[i], sorted[j], sortBy2)
		}
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return sorted
}

func compareColumn(a, b types.Device, column string) int {
	switch column {
	case "Menge":
		return a.Amount - b.Amount
	case "Gerätebezeichnung":
		return strings.Compare(a.Description, b.Description)
	case "Lagerort":
		return strings.Compare(a.Location, b.Location)
	case "Kategorie":
		return strings.Compare(a.Category, b.Category)
	case "Preis":
		pa, pb := sortPrice(a.Price), sortPrice(b.Price)
		switch {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		default:
			return 0
		}
	default:
		return a.Index - b.Index
	}
}

func sortPrice(p *float64) float64 {
	if p == nil {
		return unpricedSortValue
	}
	return *p
}

// ValidSortColumn reports whether the display name is one of the offered
// sort columns.
func ValidSortColumn(name string) bool {
	for _, col := range SortColumns {
		if col == name {
			return true
		}
	}
	return false
}

// FilterQueryString renders the active filter as a compact string for the
// stored report record.
func FilterQueryString(filter DeviceFilter) string {
	if filter.Empty() {
		return ""
	}
	var parts []string
	if filter.Search != "" {
		parts = append(parts, "search="+filter.Search)
	}
	if len(filter.Indices) != 0 {
		strs := make([]string, len(filter.Indices))
		for i, idx := range filter.Indices {
			strs[i] = strconv.Itoa(idx)
		}
		parts = append(parts, "indices="+strings.Join(strs, ","))
	}
	if len(filter.Categories) != 0 {
		parts = append(parts, "categories="+strings.Join(filter.Categories, ","))
	}
	if len(filter.Locations) != 0 {
		parts = append(parts, "locations="+strings.Join(filter.Locations, ","))
	}
	if len(filter.Containers) != 0 {
		parts = append(parts, "containers="+strings.Join(filter.Containers, ","))
	}
	if len(filter.Brands) != 0 {
		parts = append(parts, "brands="+strings.Join(filter.Brands, ","))
	}
	return strings.Join(parts, "&")
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
