package handlers

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// onlineWindow is how recently a professional must have sent a heartbeat to
// count as online.
const onlineWindow = 15 * time.Minute

type ProfessionalHandler struct {
	DB *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{DB: db}
}

// Search - GET /api/professionals/search (public)
// Filters: profession, online=1, lat/lng + radius_km; sort=rating|distance.
func (h *ProfessionalHandler) Search(c *fiber.Ctx) error {
	profession := utils.Sanitize(c.Query("profession"))
	onlineOnly := c.Query("online") == "1" || c.Query("online") == "true"
	sortBy := c.Query("sort")

	var latCenter, lngCenter float64
	useLocation := false
	if latQ, lngQ := c.Query("lat"), c.Query("lng"); latQ != "" && lngQ != "" {
		la, errLat := strconv.ParseFloat(latQ, 64)
		ln, errLng := strconv.ParseFloat(lngQ, 64)
		if errLat == nil && errLng == nil && la >= -90 && la <= 90 && ln >= -180 && ln <= 180 {
			latCenter, lngCenter = la, ln
			useLocation = true
		}
	}

	radiusKm := 0.0
	if r := c.Query("radius_km"); r != "" {
		if f, err := strconv.ParseFloat(r, 64); err == nil && f > 0 {
			radiusKm = f
		}
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	onlineSince := time.Now().Add(-onlineWindow)
	query := h.DB.Model(&models.User{}).Where("profession != ''")
	if profession != "" {
		query = query.Where("profession = ?", profession)
	}
	if onlineOnly {
		query = query.Where("last_seen_at > ?", onlineSince)
	}

	var users []models.User
	// Fetch extra rows so the distance filter still fills the page.
	if err := query.Order("last_seen_at desc").Limit(limit * 3).Find(&users).Error; err != nil {
		return c.JSON(fiber.Map{"professionals": []fiber.Map{}})
	}

	list := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		online := u.LastSeenAt != nil && u.LastSeenAt.After(onlineSince)
		item := fiber.Map{
			"id":           u.ID,
			"name":         u.Name,
			"avatar_path":  u.AvatarPath,
			"profession":   u.Profession,
			"online":       online,
			"rating_avg":   u.RatingAvg,
			"rating_count": u.RatingCount,
		}
		if u.LastSeenAt != nil {
			item["last_seen_at"] = u.LastSeenAt
		}
		if u.Latitude != nil {
			item["lat"] = *u.Latitude
		}
		if u.Longitude != nil {
			item["lng"] = *u.Longitude
		}
		if useLocation && u.Latitude != nil && u.Longitude != nil {
			km := haversineKm(latCenter, lngCenter, *u.Latitude, *u.Longitude)
			if radiusKm > 0 && km > radiusKm {
				continue
			}
			item["distance_km"] = math.Round(km*10) / 10
		}
		list = append(list, item)
	}

	switch {
	case useLocation && sortBy == "distance":
		sort.Slice(list, func(i, j int) bool {
			di, _ := list[i]["distance_km"].(float64)
			dj, _ := list[j]["distance_km"].(float64)
			return di < dj
		})
	case sortBy == "rating":
		sort.Slice(list, func(i, j int) bool {
			ri, _ := list[i]["rating_avg"].(float64)
			rj, _ := list[j]["rating_avg"].(float64)
			return ri > rj
		})
	}

	if len(list) > limit {
		list = list[:limit]
	}

	return c.JSON(fiber.Map{"professionals": list})
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
