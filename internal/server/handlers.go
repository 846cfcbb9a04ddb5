package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/resume/internal/contact"
	"github.com/Zachkp/resume/internal/i18n"
	"github.com/Zachkp/resume/internal/logger"
)

func (s *Server) handleRoot(c *gin.Context) {
	l := i18n.Negotiate(c.GetHeader("Accept-Language"))
	c.Redirect(http.StatusFound, "/"+string(l))
}

func (s *Server) pageData(l i18n.Locale) gin.H {
	r := s.builder.Resume()
	return gin.H{
		"lang":     l,
		"langs":    i18n.Supported(),
		"t":        i18n.Table(l),
		"personal": r.Personal,
		"title":    r.Personal.Title[l],
		"location": r.Personal.Location[l],
		"about":    r.Personal.About[l],
		"social":   r.Social,
	}
}

func (s *Server) handleIndex(c *gin.Context, l i18n.Locale) {
	selected := c.Query("skill")
	data := s.pageData(l)

	experiences, err := s.builder.Experiences(l, selected)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	skills, err := s.builder.Skills(l, selected)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	total, err := s.builder.TotalExperience(l)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}

	data["experiences"] = experiences
	data["skills"] = skills
	data["selectedSkill"] = selected
	data["total"] = total
	data["education"] = s.builder.Education(l)
	data["posts"] = s.builder.Posts(l)
	c.HTML(http.StatusOK, "index.html", data)
}

// Work experience fragment. ?skill= highlights the jobs that used it.
func (s *Server) handleWork(c *gin.Context, l i18n.Locale) {
	experiences, err := s.builder.Experiences(l, c.Query("skill"))
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	total, err := s.builder.TotalExperience(l)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "work-content.html", gin.H{
		"lang":        l,
		"t":           i18n.Table(l),
		"experiences": experiences,
		"total":       total,
	})
}

func (s *Server) handleEducation(c *gin.Context, l i18n.Locale) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"lang":      l,
		"t":         i18n.Table(l),
		"education": s.builder.Education(l),
	})
}

// Skills fragment. Selecting a chip (or clearing it) also swaps the work
// list out of band so its highlights follow the selection.
func (s *Server) handleSkills(c *gin.Context, l i18n.Locale) {
	selected := c.Query("skill")
	skills, err := s.builder.Skills(l, selected)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	experiences, err := s.builder.Experiences(l, selected)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	total, err := s.builder.TotalExperience(l)
	if err != nil {
		s.renderError(c, l, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "skills.html", gin.H{
		"lang":          l,
		"t":             i18n.Table(l),
		"skills":        skills,
		"selectedSkill": selected,
		"experiences":   experiences,
		"total":         total,
		"oob":           true,
	})
}

func (s *Server) handleBlog(c *gin.Context, l i18n.Locale) {
	c.HTML(http.StatusOK, "blog-content.html", gin.H{
		"lang":  l,
		"t":     i18n.Table(l),
		"posts": s.builder.Posts(l),
	})
}

func (s *Server) handleContactForm(c *gin.Context, l i18n.Locale) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"lang": l,
		"t":    i18n.Table(l),
	})
}

// handleContact validates, stores and mails a contact form submission and
// answers with an HTMX fragment.
func (s *Server) handleContact(c *gin.Context) {
	l := s.requestLocale(c)
	fragment := func(status int, name, key string) {
		c.HTML(status, name, gin.H{"lang": l, "message": i18n.T(l, key)})
	}

	ip := c.ClientIP()
	if !s.limiter.Allow(ip) {
		s.metrics.ContactOutcome("limited")
		fragment(http.StatusTooManyRequests, "contact-error.html", "contact.rateLimited")
		return
	}

	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		s.metrics.ContactOutcome("invalid")
		logger.Debug("invalid contact form", "error", err)
		fragment(http.StatusOK, "contact-error.html", "contact.invalid")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var messageID string
	if s.store != nil {
		m, err := s.store.SaveMessage(ctx, form, s.hashIP(ip), s.builder.Now())
		if err != nil {
			logger.Error("failed to store contact message", "error", err)
		} else {
			messageID = m.ID
		}
	}

	sendErr := s.send(form)
	if messageID != "" {
		if err := s.store.MarkDelivery(ctx, messageID, sendErr); err != nil {
			logger.Error("failed to record delivery", "id", messageID, "error", err)
		}
	}

	if sendErr != nil {
		s.metrics.ContactOutcome("failed")
		logger.Error("error sending email", "error", sendErr)
		fragment(http.StatusOK, "contact-error.html", "contact.error")
		return
	}

	s.metrics.ContactOutcome("sent")
	logger.Info("contact message sent", "id", messageID)
	fragment(http.StatusOK, "contact-success.html", "contact.success")
}

func (s *Server) send(f contact.Form) error {
	if s.mailer == nil {
		return contact.ErrNotConfigured
	}
	return s.mailer.Send(f)
}

func (s *Server) handleAPIExperience(c *gin.Context) {
	l := s.requestLocale(c)
	experiences, err := s.builder.Experiences(l, c.Query("skill"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	months, err := s.builder.TotalMonths()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.metrics.SetExperienceMonths(months)

	total, err := s.builder.TotalExperience(l)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lang":        l,
		"total":       total,
		"totalMonths": months,
		"experiences": experiences,
	})
}

func (s *Server) handleAPISkills(c *gin.Context) {
	l := s.requestLocale(c)
	skills, err := s.builder.Skills(l, c.Query("skill"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lang": l, "skills": skills})
}
