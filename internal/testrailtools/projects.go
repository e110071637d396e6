package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerProjectTools() {
	projects := r.client.Projects

	r.register(&Tool{
		Name:        "getProjects",
		Description: "List the projects of the TestRail instance, optionally only active or completed ones.",
		Entity:      "project",
		Schema:      toolschema.GetProjects,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			filter, err := decode[testrailsdk.ProjectFilter](args)
			if err != nil {
				return fail("Failed to get projects", err)
			}
			page, err := projects.List(ctx, filter)
			if err != nil {
				return fail("Failed to get projects", err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d projects", len(page.Items)), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getProject",
		Description: "Get one project by ID.",
		Entity:      "project",
		Schema:      toolschema.GetProject,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			project, err := projects.Get(ctx, projectID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Retrieved project %d", projectID), "project", project)
		},
	})

	r.register(&Tool{
		Name:        "addProject",
		Description: "Create a project. Requires administrator rights upstream.",
		Entity:      "project",
		Schema:      toolschema.AddProject,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			name := args.String("name")
			req, err := decode[testrailsdk.ProjectRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add project %q", name), err)
			}
			project, err := projects.Add(ctx, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add project %q", name), err)
			}
			return ok(fmt.Sprintf("Created project %q", name), "project", project)
		},
	})

	r.register(&Tool{
		Name:        "updateProject",
		Description: "Update the name, announcement or completion state of a project.",
		Entity:      "project",
		Schema:      toolschema.UpdateProject,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.ProjectRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update project %d", projectID), err)
			}
			project, err := projects.Update(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Updated project %d", projectID), "project", project)
		},
	})

	r.register(&Tool{
		Name:        "deleteProject",
		Description: "Delete a project with all its suites, cases, runs and results. This cannot be undone.",
		Entity:      "project",
		Schema:      toolschema.DeleteProject,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			if err := projects.Delete(ctx, projectID); err != nil {
				return fail(fmt.Sprintf("Failed to delete project %d", projectID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted project %d", projectID), nil)
		},
	})
}
