package devmode

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

func seedSpecies() []types.PlantSpeciesDetails {
	img := func(name string) *types.ImageDescriptor {
		base := "https://images.example.com/species/" + name
		return &types.ImageDescriptor{
			License:      45,
			LicenseName:  "Attribution-ShareAlike 3.0 Unported (CC BY-SA 3.0)",
			OriginalURL:  base + "/original.jpg",
			RegularURL:   base + "/regular.jpg",
			MediumURL:    base + "/medium.jpg",
			SmallURL:     base + "/small.jpg",
			ThumbnailURL: base + "/thumbnail.jpg",
		}
	}
	return []types.PlantSpeciesDetails{
		{
			ID: 1, CommonName: "European Silver Fir", ScientificName: []string{"Abies alba"},
			Family: "Pinaceae", Type: "tree", Cycle: "Perennial", Watering: "Frequent",
			Sunlight: types.FlexStrings{"full sun"}, Hardiness: &types.Hardiness{Min: "7", Max: "7"},
			CareLevel: "Medium", GrowthRate: "High", DroughtTolerant: true,
			Description:  "A tall evergreen conifer native to the mountains of Europe.",
			DefaultImage: img("abies-alba"),
		},
		{
			ID: 2, CommonName: "Swiss Cheese Plant", ScientificName: []string{"Monstera deliciosa"},
			OtherName: []string{"Monstera"}, Family: "Araceae", Type: "climber", Cycle: "Perennial",
			Watering: "Average", Sunlight: types.FlexStrings{"part shade"}, CareLevel: "Low",
			Indoor: true, EdibleFruit: true, PoisonousToPets: true, PoisonousToHuman: true,
			Description:  "Split-leaved tropical climber, popular as a houseplant.",
			DefaultImage: img("monstera-deliciosa"),
		},
		{
			ID: 3, CommonName: "Sweet Basil", ScientificName: []string{"Ocimum basilicum"},
			Family: "Lamiaceae", Type: "herb", Cycle: "Annual", Watering: "Frequent",
			Sunlight: types.FlexStrings{"full sun"}, Indoor: true, EdibleLeaf: true, Medicinal: true,
			Description:  "Fragrant culinary herb that likes warmth and regular water.",
			DefaultImage: img("ocimum-basilicum"),
		},
		{
			ID: 4, CommonName: "Aloe Vera", ScientificName: []string{"Aloe barbadensis"},
			Family: "Asphodelaceae", Type: "succulent", Cycle: "Perennial", Watering: "Minimum",
			Sunlight: types.FlexStrings{"full sun", "part shade"}, Indoor: true, DroughtTolerant: true,
			Medicinal: true, PoisonousToPets: true,
			Description:  "Succulent with gel-filled leaves; water sparingly.",
			DefaultImage: img("aloe-vera"),
		},
		{
			ID: 5, CommonName: "Tomato", ScientificName: []string{"Solanum lycopersicum"},
			Family: "Solanaceae", Type: "vegetable", Cycle: "Annual", Watering: "Frequent",
			Sunlight: types.FlexStrings{"full sun"}, EdibleFruit: true, GrowthRate: "High",
			Description:  "Fruiting vine prone to blight and leaf spot in humid weather.",
			DefaultImage: img("solanum-lycopersicum"),
		},
		{
			ID: 6, CommonName: "Boston Fern", ScientificName: []string{"Nephrolepis exaltata"},
			Family: "Lomariopsidaceae", Type: "fern", Cycle: "Perennial", Watering: "Frequent",
			Sunlight: types.FlexStrings{"part shade", "filtered shade"}, Indoor: true,
			Description:  "Arching fronds that enjoy humidity and regular misting.",
			DefaultImage: img("nephrolepis-exaltata"),
		},
	}
}

func (g *Gateway) listSpecies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	g.mu.Lock()
	matched := make([]types.PlantSpeciesDetails, 0, len(g.species))
	for _, s := range g.species {
		if speciesMatches(s, q) {
			matched = append(matched, s)
		}
	}
	g.mu.Unlock()

	if strings.EqualFold(q.Get("order"), "desc") {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CommonName > matched[j].CommonName })
	} else if q.Get("order") != "" {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CommonName < matched[j].CommonName })
	}

	total := len(matched)
	lastPage := (total + SpeciesPageSize - 1) / SpeciesPageSize
	if lastPage == 0 {
		lastPage = 1
	}
	from := (page - 1) * SpeciesPageSize
	to := from + SpeciesPageSize
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}

	out := types.SpeciesPage{
		Data:        make([]types.PlantSpecies, 0, to-from),
		PerPage:     SpeciesPageSize,
		CurrentPage: page,
		LastPage:    lastPage,
		Total:       total,
	}
	for _, s := range matched[from:to] {
		out.Data = append(out.Data, types.PlantSpecies{
			ID:             s.ID,
			CommonName:     s.CommonName,
			ScientificName: s.ScientificName,
			OtherName:      s.OtherName,
			Cycle:          s.Cycle,
			Watering:       s.Watering,
			Sunlight:       s.Sunlight,
			DefaultImage:   s.DefaultImage,
		})
	}
	if len(out.Data) > 0 {
		out.From, out.To = from+1, to
	}
	writeJSON(w, http.StatusOK, out)
}

func speciesMatches(s types.PlantSpeciesDetails, q url.Values) bool {
	if term := strings.ToLower(strings.TrimSpace(q.Get("q"))); term != "" {
		hit := strings.Contains(strings.ToLower(s.CommonName), term)
		for _, n := range append(append([]string{}, s.ScientificName...), s.OtherName...) {
			hit = hit || strings.Contains(strings.ToLower(n), term)
		}
		if !hit {
			return false
		}
	}
	flags := map[string]bool{
		"indoor":    bool(s.Indoor),
		"edible":    s.Edible(),
		"poisonous": s.Poisonous(),
	}
	for key, have := range flags {
		if want, err := strconv.ParseBool(q.Get(key)); err == nil && want != have {
			return false
		}
	}
	if c := q.Get("cycle"); c != "" && !strings.EqualFold(c, s.Cycle) {
		return false
	}
	if wt := q.Get("watering"); wt != "" && !strings.EqualFold(wt, s.Watering) {
		return false
	}
	if sun := q.Get("sunlight"); sun != "" {
		found := false
		for _, v := range s.Sunlight {
			found = found || strings.EqualFold(strings.ReplaceAll(sun, "_", " "), v)
		}
		if !found {
			return false
		}
	}
	if h := q.Get("hardiness"); h != "" {
		if s.Hardiness == nil || !inZoneRange(h, s.Hardiness) {
			return false
		}
	}
	return true
}

func inZoneRange(zone string, h *types.Hardiness) bool {
	z, err := strconv.Atoi(zone)
	if err != nil {
		return false
	}
	lo, errLo := strconv.Atoi(h.Min)
	hi, errHi := strconv.Atoi(h.Max)
	return errLo == nil && errHi == nil && z >= lo && z <= hi
}

func (g *Gateway) speciesDetails(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var found *types.PlantSpeciesDetails
	g.mu.Lock()
	for i := range g.species {
		if g.species[i].ID == id {
			s := g.species[i]
			found = &s
			break
		}
	}
	g.mu.Unlock()
	if found == nil {
		notFound(w, "Species")
		return
	}
	writeJSON(w, http.StatusOK, found)
}
