package util

import (
	"container/list"
	"os"
	"strconv"
	"sync"

	"gorm.io/gorm"
)

// The endpoint logger only has a uid; this LRU maps uid -> email so log
// lines stay readable without a query per request.
type userEntry struct {
	uid   string
	email string
}

type userLRU struct {
	mu       sync.Mutex
	ll       *list.List
	items    map[string]*list.Element
	capacity int
}

var userCache *userLRU

// InitUserEmailCache sizes the cache; capacity <= 0 means 1000.
func InitUserEmailCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	userCache = &userLRU{ll: list.New(), items: make(map[string]*list.Element), capacity: capacity}
}

// InitUserEmailCacheFromEnv reads USER_EMAIL_CACHE_SIZE.
func InitUserEmailCacheFromEnv() {
	n, _ := strconv.Atoi(os.Getenv("USER_EMAIL_CACHE_SIZE"))
	InitUserEmailCache(n)
}

func UserEmailCacheGet(uid string) (string, bool) {
	if userCache == nil {
		return "", false
	}
	userCache.mu.Lock()
	defer userCache.mu.Unlock()
	ele, ok := userCache.items[uid]
	if !ok {
		return "", false
	}
	userCache.ll.MoveToFront(ele)
	return ele.Value.(userEntry).email, true
}

func UserEmailCacheSet(uid, email string) {
	if userCache == nil {
		return
	}
	userCache.mu.Lock()
	defer userCache.mu.Unlock()
	if ele, ok := userCache.items[uid]; ok {
		ele.Value = userEntry{uid: uid, email: email}
		userCache.ll.MoveToFront(ele)
		return
	}
	userCache.items[uid] = userCache.ll.PushFront(userEntry{uid: uid, email: email})
	if userCache.ll.Len() > userCache.capacity {
		tail := userCache.ll.Back()
		delete(userCache.items, tail.Value.(userEntry).uid)
		userCache.ll.Remove(tail)
	}
}

// GetUserEmail resolves uid through the cache, then the credentials table.
func GetUserEmail(db *gorm.DB, uid string) string {
	if uid == "" {
		return ""
	}
	if email, ok := UserEmailCacheGet(uid); ok {
		return email
	}
	if db == nil {
		return ""
	}
	var row struct{ Email string }
	if err := db.Table("credentials").Select("email").Where("uid = ?", uid).Take(&row).Error; err != nil {
		return ""
	}
	if row.Email != "" {
		UserEmailCacheSet(uid, row.Email)
	}
	return row.Email
}
