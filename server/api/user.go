package api

import (
	"net/http"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/result"
)

// HTTPGetAllUsers returns a HandlerFunc that lists every user. Admin only.
func (api API) HTTPGetAllUsers() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllUsers)
}

// HTTPCreateUser returns a HandlerFunc that creates a user from a UserModel
// body. Admin only. A missing role gives an unverified user.
func (api API) HTTPCreateUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateUser)
}

// HTTPGetUser returns a HandlerFunc that gets the user whose ID is in the
// path. Users may get themselves; admins may get anyone.
func (api API) HTTPGetUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetUser)
}

// HTTPDeleteUser returns a HandlerFunc that deletes the user whose ID is in
// the path, along with every source they own. Users may delete themselves;
// admins may delete anyone.
func (api API) HTTPDeleteUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteUser)
}

func (api API) epGetAllUsers(req *http.Request) result.Result {
	actor, _ := requireUser(req)
	if actor.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) list users: forbidden", actor.Username, actor.Role)
	}

	users, err := api.Backend.GetAllUsers(req.Context())
	if err != nil {
		return serviceErr("list users", err)
	}

	models := make([]UserModel, 0, len(users))
	for _, u := range users {
		models = append(models, userModel(u))
	}
	return result.OK(models, "user '%s' listed %d users", actor.Username, len(models))
}

func (api API) epCreateUser(req *http.Request) result.Result {
	actor, _ := requireUser(req)
	if actor.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) create user: forbidden", actor.Username, actor.Role)
	}

	var body UserModel
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), "%s", err.Error())
	}

	role := dao.Unverified
	if body.Role != "" {
		var err error
		if role, err = dao.ParseRole(body.Role); err != nil {
			return result.BadRequest("role: "+err.Error(), "role: %s", err.Error())
		}
	}

	created, err := api.Backend.CreateUser(req.Context(), body.Username, body.Password, body.Email, role)
	if err != nil {
		return serviceErr("create user", err)
	}

	return result.Created(userModel(created), "user '%s' created user '%s' (%s)", actor.Username, created.Username, created.ID)
}

func (api API) epGetUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	actor, _ := requireUser(req)
	if id != actor.ID && actor.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get user %s: forbidden", actor.Username, actor.Role, id)
	}

	target, err := api.Backend.GetUser(req.Context(), id.String())
	if err != nil {
		return serviceErr("get user", err)
	}

	return result.OK(userModel(target), "user '%s' got %s", actor.Username, subject(actor, target))
}

func (api API) epDeleteUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	actor, _ := requireUser(req)
	if id != actor.ID && actor.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete user %s: forbidden", actor.Username, actor.Role, id)
	}

	deleted, err := api.Backend.DeleteUser(req.Context(), id.String())
	if err != nil {
		return serviceErr("delete user", err)
	}

	return result.NoContent("user '%s' deleted %s", actor.Username, subject(actor, deleted))
}
