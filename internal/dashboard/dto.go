package dashboard

import "github.com/saulo-duarte/lms-lambda/internal/course"

type AdminStats struct {
	Students    int64 `json:"students"`
	Instructors int64 `json:"instructors"`
	Courses     int64 `json:"courses"`
}

type InstructorHomeResponse struct {
	CourseCount   int64            `json:"course_count"`
	LatestCourses []*course.Course `json:"latest_courses"`
}

type StudentHomeResponse struct {
	EnrollmentCount int64            `json:"enrollment_count"`
	LatestCourses   []*course.Course `json:"latest_courses"`
}
