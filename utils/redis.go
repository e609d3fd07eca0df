package utils

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	password := os.Getenv("REDIS_PASSWORD")

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func GetCached(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func SetCached(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

func InvalidateCachePrefix(ctx context.Context, prefix string) error {
	iter := RedisClient.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func GenerateQueryCacheKey(prefix string, queryParams map[string]string) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(queryParams[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	hashStr := hex.EncodeToString(hash[:])

	return prefix + ":" + hashStr
}

const (
	otpTTL            = 5 * time.Minute
	otpResendCooldown = 45 * time.Second
	otpMaxAttempts    = 5
)

var (
	ErrOTPCooldown    = errors.New("an OTP was sent recently, wait before requesting another")
	ErrOTPExpired     = errors.New("OTP expired or never requested")
	ErrOTPMaxAttempts = errors.New("too many incorrect attempts, request a new OTP")
	ErrOTPMismatch    = errors.New("incorrect OTP")
)

// StoreOTP saves the code for a normalized phone with a 5 minute TTL and
// refuses to overwrite a code sent within the resend cooldown window.
func StoreOTP(ctx context.Context, phone, code string) error {
	cooldownKey := "otp_cooldown:" + phone
	ok, err := RedisClient.SetNX(ctx, cooldownKey, "1", otpResendCooldown).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrOTPCooldown
	}

	if err := RedisClient.Set(ctx, "otp:"+phone, code, otpTTL).Err(); err != nil {
		return err
	}
	return RedisClient.Del(ctx, "otp_attempts:"+phone).Err()
}

// VerifyOTP checks the submitted code, counting failed attempts. The stored
// code is deleted on success and after the attempt cap is exceeded.
func VerifyOTP(ctx context.Context, phone, code string) error {
	stored, err := RedisClient.Get(ctx, "otp:"+phone).Result()
	if err == redis.Nil {
		return ErrOTPExpired
	}
	if err != nil {
		return err
	}

	if stored != code {
		attempts, err := RedisClient.Incr(ctx, "otp_attempts:"+phone).Result()
		if err != nil {
			return err
		}
		RedisClient.Expire(ctx, "otp_attempts:"+phone, otpTTL)
		if attempts >= otpMaxAttempts {
			RedisClient.Del(ctx, "otp:"+phone, "otp_attempts:"+phone)
			return ErrOTPMaxAttempts
		}
		return ErrOTPMismatch
	}

	return RedisClient.Del(ctx, "otp:"+phone, "otp_attempts:"+phone, "otp_cooldown:"+phone).Err()
}
