package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/devconnect/devconnect-api/internal/application/usecase/profile"
	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
	"github.com/devconnect/devconnect-api/pkg/validation"
)

const (
	msgNoProfileForUser = "There is no profile for this user"
	msgProfileNotFound  = "Profile not found"
	msgUserDeleted      = "User deleted"
)

var (
	upsertProfileRules = validation.NewRuleSet(
		validation.Required("status", "Status is required"),
		validation.Required("skills", "Skills are required"),
	)
	experienceRules = validation.NewRuleSet(
		validation.Required("title", "Title is required"),
		validation.Required("company", "Company is required"),
		validation.Required("from", "From date is required"),
	)
	educationRules = validation.NewRuleSet(
		validation.Required("school", "School is required"),
		validation.Required("degree", "Degree is required"),
		validation.Required("fieldofstudy", "Field of study is required"),
	)
)

type ProfileHandler struct {
	getProfile    *profileUC.GetProfileUseCase
	listProfiles  *profileUC.ListProfilesUseCase
	upsertProfile *profileUC.UpsertProfileUseCase
	experience    *profileUC.ExperienceUseCase
	education     *profileUC.EducationUseCase
	deleteAccount *profileUC.DeleteAccountUseCase
	githubRepos   *profileUC.GithubReposUseCase
	logger        logger.Logger
}

func NewProfileHandler(
	getProfile *profileUC.GetProfileUseCase,
	listProfiles *profileUC.ListProfilesUseCase,
	upsertProfile *profileUC.UpsertProfileUseCase,
	experience *profileUC.ExperienceUseCase,
	education *profileUC.EducationUseCase,
	deleteAccount *profileUC.DeleteAccountUseCase,
	githubRepos *profileUC.GithubReposUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		getProfile:    getProfile,
		listProfiles:  listProfiles,
		upsertProfile: upsertProfile,
		experience:    experience,
		education:     education,
		deleteAccount: deleteAccount,
		githubRepos:   githubRepos,
		logger:        log,
	}
}

// GetMyProfile handles GET /api/profile/me.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	output, err := h.getProfile.Execute(c.Request.Context(), profileUC.GetProfileInput{OwnerID: userID})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewBadRequest(msgNoProfileForUser, "no profile for user "+userID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// UpsertProfile handles POST /api/profile: create the caller's profile if
// absent, otherwise merge the supplied fields into it.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile upsert", err))
		return
	}

	if violations := upsertProfileRules.Check(map[string]string{
		"status": strValue(req.Status),
		"skills": strValue(req.Skills),
	}); violations != nil {
		c.Error(violations)
		return
	}

	input := profileUC.UpsertProfileInput{
		OwnerID:        userID,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		RawSkills:      req.Skills,
		Social:         req.SocialLinks(),
	}
	output, err := h.upsertProfile.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// ListProfiles handles GET /api/profile.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.listProfiles.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProfileDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToProfileDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

// GetProfileByUser handles GET /api/profile/user/:user_id. A malformed id is
// the same not-found outcome as an unknown one, never a server error.
func (h *ProfileHandler) GetProfileByUser(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewBadRequest(msgProfileNotFound, "malformed user id "+c.Param("user_id")))
		return
	}

	output, err := h.getProfile.Execute(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewBadRequest(msgProfileNotFound, "no profile for user "+ownerID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// DeleteAccount handles DELETE /api/profile and DELETE /api/profile/me:
// removes the caller's profile and user record.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	if err := h.deleteAccount.Execute(c.Request.Context(), profileUC.DeleteAccountInput{OwnerID: userID}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": msgUserDeleted})
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	if violations := experienceRules.Check(map[string]string{
		"title":   req.Title,
		"company": req.Company,
		"from":    req.From,
	}); violations != nil {
		c.Error(violations)
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid from date", err))
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid to date", err))
		return
	}

	input := profileUC.AddExperienceInput{
		OwnerID: userID,
		Entry: profile.Experience{
			Title:       req.Title,
			Company:     req.Company,
			Location:    req.Location,
			From:        from,
			To:          to,
			Current:     req.Current,
			Description: req.Description,
		},
	}
	output, err := h.experience.ExecuteAdd(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewBadRequest(msgNoProfileForUser, "no profile for user "+userID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id. An id
// matching no entry removes nothing and still succeeds.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("malformed experience id "+c.Param("exp_id"), err))
		return
	}

	output, err := h.experience.ExecuteRemove(c.Request.Context(), profileUC.RemoveExperienceInput{
		OwnerID: userID,
		EntryID: entryID,
	})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewBadRequest(msgNoProfileForUser, "no profile for user "+userID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education", err))
		return
	}

	if violations := educationRules.Check(map[string]string{
		"school":       req.School,
		"degree":       req.Degree,
		"fieldofstudy": req.FieldOfStudy,
	}); violations != nil {
		c.Error(violations)
		return
	}

	var from time.Time
	if req.From != "" {
		var err error
		from, err = parseDate(req.From)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid from date", err))
			return
		}
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid to date", err))
		return
	}

	input := profileUC.AddEducationInput{
		OwnerID: userID,
		Entry: profile.Education{
			School:       req.School,
			Degree:       req.Degree,
			FieldOfStudy: req.FieldOfStudy,
			From:         from,
			To:           to,
			Current:      req.Current,
			Description:  req.Description,
		},
	}
	output, err := h.education.ExecuteAdd(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewBadRequest(msgNoProfileForUser, "no profile for user "+userID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("malformed education id "+c.Param("edu_id"), err))
		return
	}

	output, err := h.education.ExecuteRemove(c.Request.Context(), profileUC.RemoveEducationInput{
		OwnerID: userID,
		EntryID: entryID,
	})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewBadRequest(msgNoProfileForUser, "no profile for user "+userID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// GithubRepos handles GET /api/profile/github/:username and relays the
// upstream repository listing verbatim.
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	output, err := h.githubRepos.Execute(c.Request.Context(), profileUC.GithubReposInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Repos)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
