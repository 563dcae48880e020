package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/auth"
	"socialfeed/internal/logging"
	"socialfeed/internal/social"
	"socialfeed/internal/store"
)

func (api *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "register", err.Error())
		return
	}

	user, token, err := api.accounts.Register(r.Context(), social.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		api.fail(w, r, "register", err)
		return
	}

	logging.FromContext(r.Context(), api.logger).WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")
	api.ok("register")
	api.writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"user":  userDetails(&social.Profile{User: *user}, true),
		"token": token,
	})
}

func (api *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "login", err.Error())
		return
	}

	user, token, err := api.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.fail(w, r, "login", err)
		return
	}
	if err := auth.StartSession(api.sessions, w, r, user.ID); err != nil {
		api.fail(w, r, "login", err)
		return
	}

	profile, err := api.accounts.Profile(r.Context(), user.ID)
	if err != nil {
		api.fail(w, r, "login", err)
		return
	}

	api.ok("login")
	api.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"user":  userDetails(profile, true),
		"token": token,
	})
}

func (api *API) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := auth.EndSession(api.sessions, w, r); err != nil {
		api.fail(w, r, "logout", err)
		return
	}
	api.ok("logout")
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) GETProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := api.accounts.Profile(r.Context(), caller(r))
	if err != nil {
		api.fail(w, r, "profile", err)
		return
	}
	api.ok("profile")
	api.writeJSON(w, r, http.StatusOK, userDetails(profile, true))
}

func (api *API) PATCHProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateRequest
	if err := decode(r, &req); err != nil {
		api.badRequest(w, r, "profile", err.Error())
		return
	}

	profile, err := api.accounts.UpdateProfile(r.Context(), caller(r), store.ProfileUpdate{
		Email:     req.Email,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		api.fail(w, r, "profile", err)
		return
	}
	api.ok("profile")
	api.writeJSON(w, r, http.StatusOK, userDetails(profile, true))
}

func (api *API) GETUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		api.badRequest(w, r, "user", err.Error())
		return
	}

	profile, err := api.accounts.Profile(r.Context(), id)
	if err != nil {
		api.fail(w, r, "user", err)
		return
	}
	api.ok("user")
	api.writeJSON(w, r, http.StatusOK, userDetails(profile, id == caller(r)))
}

func (api *API) GETFollowersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		api.badRequest(w, r, "followers", err.Error())
		return
	}

	names, err := api.relationships.Followers(r.Context(), id, rowLimit(r))
	if err != nil {
		api.fail(w, r, "followers", err)
		return
	}
	api.ok("followers")
	api.writeJSON(w, r, http.StatusOK, map[string][]string{"followers": names})
}

func (api *API) GETFollowingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		api.badRequest(w, r, "following", err.Error())
		return
	}

	names, err := api.relationships.Following(r.Context(), id, rowLimit(r))
	if err != nil {
		api.fail(w, r, "following", err)
		return
	}
	api.ok("following")
	api.writeJSON(w, r, http.StatusOK, map[string][]string{"follows": names})
}

func (api *API) GETIsFollowingHandler(w http.ResponseWriter, r *http.Request) {
	who, err := pathID(r, "userId")
	if err != nil {
		api.badRequest(w, r, "isfollowing", err.Error())
		return
	}
	whom, err := pathID(r, "otherId")
	if err != nil {
		api.badRequest(w, r, "isfollowing", err.Error())
		return
	}

	following, err := api.relationships.IsFollowing(r.Context(), who, whom)
	if err != nil {
		api.fail(w, r, "isfollowing", err)
		return
	}
	api.ok("isfollowing")
	api.writeJSON(w, r, http.StatusOK, following)
}
