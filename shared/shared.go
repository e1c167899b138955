package shared

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"sportshub/shared/cache"
	"sportshub/shared/constant"
	"sportshub/shared/dto"
	"sportshub/shared/model"
	"sportshub/shared/timezone"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update
// map and stamps the modification audit columns.
func TransformFields(data interface{}, actor string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a prefix and its parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery appends the query values in sorted order so equivalent
// requests share one entry.
func BuildCacheKeyWithQuery(prefix string, query url.Values, parts ...string) string {
	key := BuildCacheKey(prefix, parts...)

	if len(query) == 0 {
		return key
	}

	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, strings.Join(query[name], ",")))
	}

	return key + "?" + strings.Join(pairs, "&")
}

// InvalidateCaches clears every key under each prefix. Failures are logged only,
// a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}

// RequesterFromContext reads the identity the auth middleware stored on ctx.
func RequesterFromContext(ctx context.Context) model.Requester {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyRole).(string)
	clubID, _ := ctx.Value(constant.ContextKeyClubID).(string)

	return model.Requester{ID: id, Role: role, ClubID: clubID}
}

// WithRequester stores an identity on ctx the way the auth middleware does.
func WithRequester(ctx context.Context, requester model.Requester) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, requester.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyRole, requester.Role)

	return context.WithValue(ctx, constant.ContextKeyClubID, requester.ClubID)
}
