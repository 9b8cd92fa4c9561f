// Package client ties the runtime together for generated API wrappers.
//
// A Client is built once from an immutable Config and shared by every
// service wrapper. Each wrapper method describes its call as a
// request.Operation and hands it to Call or CallEither:
//
//	func (s *PetService) GetPet(ctx context.Context, id int) (*client.Pending[Pet], error) {
//	    return client.Call[Pet](ctx, s.c, request.Operation{
//	        Name:   "getPet",
//	        Method: http.MethodGet,
//	        URL:    "/api/v{api-version}/pets/{id}",
//	        Path:   map[string]any{"id": id},
//	        Errors: map[int]string{404: "Pet not found"},
//	    })
//	}
//
// Build errors are returned immediately. The Pending value can be cancelled
// at any time before it settles and is awaited either as (T, error) or, via
// CallEither, as a result.Either.
package client
