package rooms

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"guestlink/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// AtomicRedisOperations handles atomic Redis operations for room holding
type AtomicRedisOperations struct {
	redis *redis.Client
}

// NewAtomicRedisOperations creates a new atomic Redis operations handler
func NewAtomicRedisOperations(redisClient *redis.Client) *AtomicRedisOperations {
	return &AtomicRedisOperations{
		redis: redisClient,
	}
}

// Lua script for atomic room holding - prevents two agents grabbing the same room
const luaAtomicRoomHold = `
-- KEYS[1] = room hold key
-- ARGV[1] = staff_id
-- ARGV[2] = guest_id
-- ARGV[3] = ttl_seconds

local hold_key = KEYS[1]
local staff_id = ARGV[1]
local guest_id = ARGV[2]
local ttl = tonumber(ARGV[3])

if redis.call("EXISTS", hold_key) == 1 then
    local holder = redis.call("GET", hold_key)
    return {0, holder}
end

redis.call("SETEX", hold_key, ttl, staff_id .. ":" .. guest_id)

return {1, "success"}
`

// Lua script for atomic room-hold release, only the holder may release
const luaAtomicRoomRelease = `
-- KEYS[1] = room hold key
-- ARGV[1] = staff_id

local hold_key = KEYS[1]
local staff_id = ARGV[1]

local holder = redis.call("GET", hold_key)
if not holder then
    return {0, "hold_not_found"}
end

local sep = string.find(holder, ":")
if not sep or string.sub(holder, 1, sep - 1) ~= staff_id then
    return {0, "not_hold_owner"}
end

redis.call("DEL", hold_key)

return {1, "released"}
`

// AtomicHoldRoom atomically holds a room for a staff member assigning a guest
func (a *AtomicRedisOperations) AtomicHoldRoom(ctx context.Context, roomID, staffID, guestID string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildRoomHoldKey(roomID)}
	args := []interface{}{
		staffID,
		guestID,
		strconv.Itoa(int(ttl.Seconds())),
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicRoomHold, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicRoomHold, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic room hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		holder, ok := resultArray[1].(string)
		if ok {
			return fmt.Errorf("room already held by %s", holder)
		}
		return fmt.Errorf("failed to hold room")
	}

	return nil
}

// AtomicReleaseRoom atomically releases a room hold owned by the staff member
func (a *AtomicRedisOperations) AtomicReleaseRoom(ctx context.Context, roomID, staffID string) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildRoomHoldKey(roomID)}

	result, err := a.redis.EvalSha(ctx, luaAtomicRoomRelease, keys, staffID).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaAtomicRoomRelease, keys, staffID).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic room release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		reason, ok := resultArray[1].(string)
		if ok {
			return fmt.Errorf("failed to release room hold: %s", reason)
		}
		return fmt.Errorf("failed to release room hold")
	}

	return nil
}

// IsRoomHeld reports whether a hold currently guards the room
func (a *AtomicRedisOperations) IsRoomHeld(ctx context.Context, roomID string) (bool, error) {
	if a.redis == nil {
		return false, fmt.Errorf("redis client not available")
	}

	exists, err := a.redis.Exists(ctx, constants.BuildRoomHoldKey(roomID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check room hold: %w", err)
	}
	return exists == 1, nil
}

// PreloadScripts loads Lua scripts into Redis for better performance
func (a *AtomicRedisOperations) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	_, err := a.redis.ScriptLoad(ctx, luaAtomicRoomHold).Result()
	if err != nil {
		return fmt.Errorf("failed to load room hold script: %w", err)
	}

	_, err = a.redis.ScriptLoad(ctx, luaAtomicRoomRelease).Result()
	if err != nil {
		return fmt.Errorf("failed to load room release script: %w", err)
	}

	return nil
}
