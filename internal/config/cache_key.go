package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session (JTI).
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:student:%d", studentID)
}

// TeacherSessionKey returns the cache key for a teacher's login session (JTI).
func (r *CacheKeyStruct) TeacherSessionKey(teacherID int) string {
	return fmt.Sprintf("login:teacher:%d", teacherID)
}

// ChapterCatalogKey returns the cache key for the distinct chapter list of
// one grade/semester slice of the question bank.
func (r *CacheKeyStruct) ChapterCatalogKey(grade string, semester int) string {
	return fmt.Sprintf("catalog:chapters:%s:%d", grade, semester)
}

var CacheKey = NewCacheKeyStruct()
