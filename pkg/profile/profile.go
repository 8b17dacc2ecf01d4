package profile

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the free-form resume content loaded from a JSON file. Field
// names and structure belong to the template author; nothing here enforces
// a schema.
type Profile map[string]interface{}

// ExperienceKey is the one field injected into a profile before rendering.
const ExperienceKey = "years_of_experience"

// daysPerYear accounts for leap years when converting elapsed days to
// whole years.
const daysPerYear = 365.25

// Load reads a profile from a JSON file.
func Load(path string) (p Profile, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile: %s", path)
		return p, err
	}

	err = json.Unmarshal(data, &p)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse profile JSON: %s", path)
		return p, err
	}

	return p, err
}

// YearsOfExperience returns the whole years elapsed between epoch and now,
// formatted as a decimal string for template interpolation.
func YearsOfExperience(epoch, now time.Time) (years string) {
	days := now.Sub(epoch).Hours() / 24
	years = strconv.Itoa(int(days / daysPerYear))
	return years
}

// InjectExperience adds the computed years_of_experience field to the
// profile. This is the only mutation a profile sees after load.
func (p Profile) InjectExperience(epoch, now time.Time) {
	p[ExperienceKey] = YearsOfExperience(epoch, now)
}
