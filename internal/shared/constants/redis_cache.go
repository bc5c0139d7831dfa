package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Guestlink application
// Pattern: guestlink:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for property settings
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for staff profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for message templates
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for room inventory
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for guest listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for chat list
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // 2 minutes - for outstanding requests
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "guestlink"
)

// ================== PROPERTIES MODULE ==================

const (
	CACHE_KEY_PROPERTIES_LIST  = CACHE_PREFIX + ":properties:list"         // + :page:X:limit:Y
	CACHE_KEY_PROPERTY_DETAIL  = CACHE_PREFIX + ":properties:detail:uuid:" // + property-id
	CACHE_KEY_PROPERTY_BY_CODE = CACHE_PREFIX + ":properties:detail:code:" // + property-code
)

const (
	TTL_PROPERTY_LIST   = TTL_STATIC_MEDIUM // 12 hours
	TTL_PROPERTY_DETAIL = TTL_STATIC_MEDIUM // 12 hours
)

// ================== TEMPLATES MODULE ==================

const (
	CACHE_KEY_TEMPLATES_BY_PROPERTY = CACHE_PREFIX + ":templates:by_property:uuid:" // + property-id
	CACHE_KEY_TEMPLATE_BY_NAME      = CACHE_PREFIX + ":templates:detail:name:"      // + property-id:name
)

const (
	TTL_TEMPLATES_LIST  = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_TEMPLATE_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== GUESTS MODULE ==================

const (
	CACHE_KEY_GUESTS_BY_PROPERTY = CACHE_PREFIX + ":guests:by_property:uuid:" // + property-id:page:X
	CACHE_KEY_CHAT_LIST          = CACHE_PREFIX + ":guests:chat_list:uuid:"   // + property-id
)

const (
	TTL_GUEST_LIST = TTL_SEMI_STATIC_QUICK // 15 minutes
	TTL_CHAT_LIST  = TTL_DYNAMIC_SHORT     // 5 minutes
)

// ================== ROOMS MODULE ==================

const (
	CACHE_KEY_ROOMS_BY_PROPERTY = CACHE_PREFIX + ":rooms:by_property:uuid:" // + property-id
	ROOM_HOLD_KEY_PREFIX        = CACHE_PREFIX + ":rooms:hold:"             // + room-id
)

const (
	TTL_ROOM_LIST = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard:uuid:" // + property-id
)

const (
	TTL_ANALYTICS_DASHBOARD = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PROPERTY_ALL  = CACHE_PREFIX + ":properties:*"
	PATTERN_INVALIDATE_TEMPLATES_ALL = CACHE_PREFIX + ":templates:*"
	PATTERN_INVALIDATE_GUESTS_ALL    = CACHE_PREFIX + ":guests:*"
	PATTERN_INVALIDATE_ROOMS_ALL     = CACHE_PREFIX + ":rooms:by_property:*"
	PATTERN_INVALIDATE_ANALYTICS_ALL = CACHE_PREFIX + ":analytics:*"
)

// ================== KEY BUILDERS ==================

// BuildPropertyDetailKey builds a cache key for a single property
func BuildPropertyDetailKey(propertyID string) string {
	return CACHE_KEY_PROPERTY_DETAIL + propertyID
}

// BuildTemplatesByPropertyKey builds a cache key for a property's template set
func BuildTemplatesByPropertyKey(propertyID string) string {
	return CACHE_KEY_TEMPLATES_BY_PROPERTY + propertyID
}

// BuildTemplateByNameKey builds a cache key for a template lookup by name
func BuildTemplateByNameKey(propertyID, name string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_TEMPLATE_BY_NAME, propertyID, name)
}

// BuildChatListKey builds a cache key for a property's chat list
func BuildChatListKey(propertyID string) string {
	return CACHE_KEY_CHAT_LIST + propertyID
}

// BuildGuestListKey builds a cache key for a paginated guest listing
func BuildGuestListKey(propertyID string, page, limit int) string {
	return fmt.Sprintf("%s%s:page:%d:limit:%d", CACHE_KEY_GUESTS_BY_PROPERTY, propertyID, page, limit)
}

// BuildAnalyticsDashboardKey builds a cache key for a property dashboard
func BuildAnalyticsDashboardKey(propertyID string) string {
	return CACHE_KEY_ANALYTICS_DASHBOARD + propertyID
}

// BuildRoomHoldKey builds the Redis key guarding a room assignment
func BuildRoomHoldKey(roomID string) string {
	return ROOM_HOLD_KEY_PREFIX + roomID
}
