package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerSectionTools() {
	sections := r.client.Sections

	r.register(&Tool{
		Name:        "getSections",
		Description: "List the sections of a project or suite.",
		Entity:      "section",
		Schema:      toolschema.GetSections,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			filter, err := decode[testrailsdk.SectionFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get sections of project %d", projectID), err)
			}
			page, err := sections.List(ctx, projectID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get sections of project %d", projectID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d sections of project %d", len(page.Items), projectID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getSection",
		Description: "Get one section by ID.",
		Entity:      "section",
		Schema:      toolschema.GetSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			section, err := sections.Get(ctx, sectionID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get section %d", sectionID), err)
			}
			return ok(fmt.Sprintf("Retrieved section %d", sectionID), "section", section)
		},
	})

	r.register(&Tool{
		Name:        "addSection",
		Description: "Create a section, optionally below a parent section.",
		Entity:      "section",
		Schema:      toolschema.AddSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.SectionRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add section to project %d", projectID), err)
			}
			section, err := sections.Add(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add section to project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Created section %q in project %d", req.Name, projectID), "section", section)
		},
	})

	r.register(&Tool{
		Name:        "moveSection",
		Description: "Move a section to another parent or position. Set toRoot to move it to the top level; omitted members keep their current value.",
		Entity:      "section",
		Schema:      toolschema.MoveSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			move, err := decode[testrailsdk.SectionMove](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to move section %d", sectionID), err)
			}
			if move.ToRoot && move.ParentID != nil {
				return fail("Invalid arguments for moveSection",
					apiframework.InvalidArgument("toRoot", "cannot be combined with parentId"))
			}
			section, err := sections.Move(ctx, sectionID, move)
			if err != nil {
				return fail(fmt.Sprintf("Failed to move section %d", sectionID), err)
			}
			return ok(fmt.Sprintf("Moved section %d", sectionID), "section", section)
		},
	})

	r.register(&Tool{
		Name:        "updateSection",
		Description: "Update the name or description of a section.",
		Entity:      "section",
		Schema:      toolschema.UpdateSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			req, err := decode[testrailsdk.SectionRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update section %d", sectionID), err)
			}
			section, err := sections.Update(ctx, sectionID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update section %d", sectionID), err)
			}
			return ok(fmt.Sprintf("Updated section %d", sectionID), "section", section)
		},
	})

	r.register(&Tool{
		Name:        "deleteSection",
		Description: "Delete a section with its subsections and cases. With soft=true only reports what would be deleted.",
		Entity:      "section",
		Schema:      toolschema.DeleteSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			soft := args.Bool("soft")
			preview, err := sections.Delete(ctx, sectionID, soft)
			if err != nil {
				return fail(fmt.Sprintf("Failed to delete section %d", sectionID), err)
			}
			if soft {
				return ok(fmt.Sprintf("Previewed deletion of section %d", sectionID), "preview", preview)
			}
			return apiframework.Success(fmt.Sprintf("Deleted section %d", sectionID), nil)
		},
	})
}
