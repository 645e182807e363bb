package api

import "fmt"

// Endpoint paths, relative to the configured API base URL.
const (
	pathAuthLogin          = "/auth/login"
	pathAuthRegister       = "/auth/register"
	pathAuthProfile        = "/auth/profile"
	pathAuthRefresh        = "/auth/refresh"
	pathAuthLogout         = "/auth/logout"
	pathAuthForgotPassword = "/auth/forgot-password"
	pathAuthResetPassword  = "/auth/reset-password"
	pathAuthSetPassword    = "/auth/set-password"

	pathUsers     = "/users"
	pathQuizzes   = "/quizzes"
	pathMaterials = "/materials"

	pathMaterialsUpload = "/materials/upload"
	pathHealth          = "/health"
)

func userPath(id string) string           { return fmt.Sprintf("%s/%s", pathUsers, id) }
func quizPath(id string) string           { return fmt.Sprintf("%s/%s", pathQuizzes, id) }
func quizActivatePath(id string) string   { return fmt.Sprintf("%s/%s/activate", pathQuizzes, id) }
func quizDeactivatePath(id string) string { return fmt.Sprintf("%s/%s/deactivate", pathQuizzes, id) }
func materialPath(id string) string       { return fmt.Sprintf("%s/%s", pathMaterials, id) }
