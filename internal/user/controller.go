package user

import (
	"errors"
	"net/http"
	"transcript_api/internal/auth"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService UserServiceInterface
	codec       *auth.Codec
}

func NewUserController(userService UserServiceInterface, codec *auth.Codec) *UserController {
	return &UserController{
		userService: userService,
		codec:       codec,
	}
}

// Login handles POST /token. Credentials arrive form-encoded; a successful
// login returns a bearer token for the username.
func (a *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	if err := c.ShouldBind(&req); err != nil {
		loginRejected(c)
		return
	}

	user, err := a.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			loginRejected(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	token, err := a.codec.Issue(user.Username, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Register handles POST /sing-up. The route name is a long-standing typo
// that clients depend on.
func (a *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if _, err := a.userService.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

// loginRejected sends the one response shape used for every failed login,
// whatever the underlying cause.
func loginRejected(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
}
