package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"github.com/travigo/subwayboard/pkg/database"
	"github.com/travigo/subwayboard/pkg/redis_client"
	"github.com/travigo/subwayboard/pkg/specialdays"
	"github.com/travigo/subwayboard/pkg/timetable"
	"github.com/travigo/subwayboard/pkg/util"
)

const (
	TimetableSourceDirectory = "directory"
	TimetableSourceMongoDB   = "mongodb"
)

const (
	DefaultTimezone     = "Asia/Tokyo"
	DefaultTimetableDir = "timetables"
)

type Config struct {
	Location   *time.Location
	CutoffHour int

	TimetableSource string
	TimetableDir    string

	HolidaysURL  string
	HolidaysFile string

	Redis redis_client.Options

	MongoConnection string
	MongoDatabase   string
}

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	location, err := time.LoadLocation(util.GetEnvironmentValue(env, "TRAVIGO_TIMEZONE", DefaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("TRAVIGO_TIMEZONE: %w", err)
	}

	cutoffHour, err := intValue(env, "TRAVIGO_LATE_NIGHT_CUTOFF_HOUR", ctdf.LateNightCutoffHour)
	if err != nil {
		return nil, err
	}
	if cutoffHour < 0 || cutoffHour > 23 {
		return nil, fmt.Errorf("TRAVIGO_LATE_NIGHT_CUTOFF_HOUR: %d outside 0-23", cutoffHour)
	}

	redisDatabase, err := intValue(env, "TRAVIGO_REDIS_DATABASE", 0)
	if err != nil {
		return nil, err
	}

	source := util.GetEnvironmentValue(env, "TRAVIGO_TIMETABLE_SOURCE", TimetableSourceDirectory)
	if source != TimetableSourceDirectory && source != TimetableSourceMongoDB {
		return nil, fmt.Errorf("TRAVIGO_TIMETABLE_SOURCE: unknown source %q, expected directory or mongodb", source)
	}

	return &Config{
		Location:        location,
		CutoffHour:      cutoffHour,
		TimetableSource: source,
		TimetableDir:    util.GetEnvironmentValue(env, "TRAVIGO_TIMETABLE_DIR", DefaultTimetableDir),
		HolidaysURL:     util.GetEnvironmentValue(env, "TRAVIGO_HOLIDAYS_URL", specialdays.DefaultHolidaysURL),
		HolidaysFile:    util.GetEnvironmentValue(env, "TRAVIGO_HOLIDAYS_FILE", ""),
		Redis: redis_client.Options{
			Address:  util.GetEnvironmentValue(env, "TRAVIGO_REDIS_ADDRESS", ""),
			Password: env["TRAVIGO_REDIS_PASSWORD"],
			Database: redisDatabase,
		},
		MongoConnection: util.GetEnvironmentValue(env, "TRAVIGO_MONGODB_CONNECTION", database.DefaultMongoConnectionString),
		MongoDatabase:   util.GetEnvironmentValue(env, "TRAVIGO_MONGODB_DATABASE", database.DefaultMongoDatabase),
	}, nil
}

func (c *Config) RedisConfigured() bool {
	return c.Redis.Address != ""
}

// NewStore builds the timetable store for the configured source, connecting to MongoDB when required
func (c *Config) NewStore(ctx context.Context, observer timetable.LoadObserver) (*timetable.Store, error) {
	var source timetable.Source

	switch c.TimetableSource {
	case TimetableSourceMongoDB:
		if err := database.ConnectMongoDB(ctx, c.MongoConnection, c.MongoDatabase); err != nil {
			return nil, err
		}
		source = timetable.NewMongoSource(database.GetCollection(database.TimetableEntriesCollection))
	default:
		source = timetable.NewDirectorySource(c.TimetableDir)
	}

	store := timetable.NewStore(source)
	store.Observer = observer

	log.Info().Str("source", source.Name()).Msg("Using timetable source")

	return store, nil
}

// LoadHolidays prefers a local holidays file over the remote calendar. Failures give a nil lookup.
func (c *Config) LoadHolidays(ctx context.Context) ctdf.HolidayLookup {
	if c.HolidaysFile != "" {
		return specialdays.LoadSpecialDayCache(ctx, specialdays.NewFileLoader(c.HolidaysFile))
	}

	loader := specialdays.NewRemoteLoader(c.HolidaysURL)
	if c.RedisConfigured() {
		if redis_client.Client == nil {
			if err := redis_client.Connect(ctx, c.Redis); err != nil {
				log.Error().Err(err).Msg("Redis unavailable, fetching holidays without cache")
			}
		}
		if redis_client.Client != nil {
			loader.WithRedisCache(redis_client.Client)
		}
	}

	return specialdays.LoadSpecialDayCache(ctx, loader)
}

func intValue(env map[string]string, key string, defaultValue int) (int, error) {
	value := util.GetEnvironmentValue(env, key, "")
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	return n, nil
}
