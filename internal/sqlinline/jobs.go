package sqlinline

const QCreateJobsTable = `--sql 6d0f3f3c-2a4e-4c0b-9a55-0c7b4f1e8a21
create table if not exists generation_jobs (
    id          uuid primary key,
    job_type    text not null,
    status      text not null,
    request     jsonb not null,
    result      jsonb,
    created_at  timestamptz not null default now(),
    updated_at  timestamptz not null default now()
);
`

const QInsertJob = `--sql 9b2d8c61-5f47-4e1a-b0d3-7a6e2c9f4d18
insert into generation_jobs (id, job_type, status, request, created_at, updated_at)
values ($1::uuid, $2, $3, $4::jsonb, $5, $5);
`

const QCompleteJob = `--sql 3e8a1f07-c64b-4d29-8e5f-1b0a7d3c6e92
update generation_jobs
set status = 'succeeded',
    result = $2::jsonb,
    updated_at = now()
where id = $1::uuid;
`

const QSelectJob = `--sql c71e4b2a-08d5-4f6c-a3e9-5d2b8f0c1a74
select id::text, job_type, status, request, result, created_at, updated_at
from generation_jobs
where id = $1::uuid;
`
